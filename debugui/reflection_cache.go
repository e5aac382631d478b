package debugui

import (
	"reflect"
	"sync"
)

type FieldInfo struct {
	Name     string
	Type     reflect.Type
	Index    int
	IsStruct bool
	IsSlice  bool
	IsMap    bool
}

// ReflectionCache remembers the exported fields of struct types so that
// inspectors do not walk the same type every frame.
type ReflectionCache struct {
	mu         sync.RWMutex
	fieldCache map[reflect.Type][]FieldInfo
}

func NewReflectionCache() *ReflectionCache {
	return &ReflectionCache{
		fieldCache: make(map[reflect.Type][]FieldInfo),
	}
}

func (rc *ReflectionCache) GetFields(t reflect.Type) []FieldInfo {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	rc.mu.RLock()
	cached, ok := rc.fieldCache[t]
	rc.mu.RUnlock()
	if ok {
		return cached
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	if cached, ok := rc.fieldCache[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, FieldInfo{
				Name:     field.Name,
				Type:     field.Type,
				Index:    i,
				IsStruct: field.Type.Kind() == reflect.Struct,
				IsSlice:  field.Type.Kind() == reflect.Slice,
				IsMap:    field.Type.Kind() == reflect.Map,
			})
		}
	}

	rc.fieldCache[t] = fields
	return fields
}

var globalReflectionCache = NewReflectionCache()
