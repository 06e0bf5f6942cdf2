package normalize

import "fmt"

func intp(v int) *int { return &v }

func show[T any](v *T) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprint(*v)
}
