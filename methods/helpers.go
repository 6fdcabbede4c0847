package methods

func IsStringInSlice(s string, slice []string) bool {
	set := make(map[string]bool)
	for _, v := range slice {
		set[v] = true
	}
	return set[s]
}

func RemoveKeyFromMap(input map[string]interface{}, keys ...string) map[string]interface{} {
	for _, key := range keys {
		if _, ok := input[key]; ok {
			delete(input, key)
		}
	}
	return input
}

// CopyMap 浅拷贝，同步时在副本上改写再入库，避免污染快照
func CopyMap(input map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(input))
	for k, v := range input {
		out[k] = v
	}
	return out
}

// ToInt64 数据库map行里的id可能是int64/float64/uint等多种类型
func ToInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case uint:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	case float64:
		return int64(n)
	case float32:
		return int64(n)
	default:
		return 0
	}
}
