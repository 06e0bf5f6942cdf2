package util

func StringPtr(v string) *string { return &v }

func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }

func DerefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
