package proto

// Helpers for building pointer-typed optional fields, mirroring the
// convention protoc-gen-go uses for proto2 optional scalars.

func Bool(v bool) *bool       { return &v }
func String(v string) *string { return &v }
func Int32(v int32) *int32   { return &v }
func Int64(v int64) *int64   { return &v }
func Uint64(v uint64) *uint64 { return &v }

func boolVal(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func i32Val(p *int32) int32 {
	if p == nil {
		return 0
	}
	return *p
}

func i64Val(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}

func u64Val(p *uint64) uint64 {
	if p == nil {
		return 0
	}
	return *p
}
