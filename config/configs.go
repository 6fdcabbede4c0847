package config

import (
	"encoding/xml"
	"fmt"
	"os"
)

var MainRouter string
var DSN string
var DBType string
var Mode string
var ApiKey string
var MainConfig Config

// Mode: admin 为配置后台部署, receiver 为生产端推送接收部署
type Config struct {
	XMLName    xml.Name `xml:"config"`
	MainRouter string   `xml:"MainRouter"`
	Mode       string   `xml:"mode"`
	ApiKey     string   `xml:"apikey"`
	DBType     string   `xml:"dbtype"`
	Dbname     string   `xml:"dbname"`
	Host       string   `xml:"host"`
	Port       string   `xml:"port"`
	Username   string   `xml:"user"`
	Password   string   `xml:"password"`
	SqlitePath string   `xml:"sqlitepath"`
}

func init() {

	xmlFile, err := os.Open("config.xml")
	if err != nil {
		fmt.Println("Error  opening  file:", err)
		return
	}
	defer xmlFile.Close()

	xmlDecoder := xml.NewDecoder(xmlFile)
	err = xmlDecoder.Decode(&MainConfig)
	if err != nil {
		fmt.Println("Error  decoding  XML:", err)
		return
	}
	MainRouter = MainConfig.MainRouter
	Mode = MainConfig.Mode
	ApiKey = MainConfig.ApiKey
	DBType = MainConfig.DBType
	if Mode == "" {
		Mode = "admin"
	}
	if DBType == "" {
		DBType = "mysql"
	}

	switch DBType {
	case "postgres":
		DSN = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC", MainConfig.Host, MainConfig.Username, MainConfig.Password, MainConfig.Dbname, MainConfig.Port)
	case "sqlite":
		DSN = MainConfig.SqlitePath
	default:
		DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local", MainConfig.Username, MainConfig.Password, MainConfig.Host, MainConfig.Port, MainConfig.Dbname)
	}
}
