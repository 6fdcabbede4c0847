package services

import (
	"reflect"
	"sort"
)

// FieldDiff 单字段差异，字段在旧/新载荷缺席时对应值为null
type FieldDiff struct {
	Field string      `json:"field"`
	Old   interface{} `json:"old"`
	New   interface{} `json:"new"`
}

// ComputeDiff 逐字段比较两份JSON载荷
// 取两侧键的并集，值相等的键剔除，结果按字段名升序保证稳定
func ComputeDiff(prev, curr map[string]interface{}) []FieldDiff {
	keySet := make(map[string]bool, len(prev)+len(curr))
	for k := range prev {
		keySet[k] = true
	}
	for k := range curr {
		keySet[k] = true
	}

	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	diff := make([]FieldDiff, 0)
	for _, k := range keys {
		oldVal, oldOK := prev[k]
		newVal, newOK := curr[k]
		if oldOK && newOK && jsonValueEqual(oldVal, newVal) {
			continue
		}
		entry := FieldDiff{Field: k}
		if oldOK {
			entry.Old = oldVal
		}
		if newOK {
			entry.New = newVal
		}
		diff = append(diff, entry)
	}
	return diff
}

// jsonValueEqual 两侧都来自json反序列化，数值统一成float64再比
func jsonValueEqual(a, b interface{}) bool {
	if na, ok := toFloat(a); ok {
		if nb, ok := toFloat(b); ok {
			return na == nb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
