// Package stack provides the slice-backed LIFO used for the open
// element stack of the construction drivers.
package stack

type Stack[T any] []T

func (s *Stack[T]) Push(v T) {
	*s = append(*s, v)
}

// Pop removes the top n items (default 1). The backing array is
// compacted when it grows well past the live size.
func (s *Stack[T]) Pop(n ...int) {
	nn := 1
	if len(n) > 0 {
		nn = n[0]
	}
	for nn > 0 && s.Len() > 0 {
		*s = (*s)[:s.Len()-1]
		nn--
	}
	if c := cap(*s); c > 20 && c > s.Len()*2 {
		s.Realloc()
	}
}

func (s *Stack[T]) Realloc() {
	*s = append(Stack[T](nil), *s...)
}

func (s Stack[T]) Len() int {
	return len(s)
}

// Top returns the most recently pushed item.
func (s Stack[T]) Top() (T, bool) {
	if len(s) == 0 {
		var zero T
		return zero, false
	}
	return s[len(s)-1], true
}

// At indexes from the bottom of the stack.
func (s Stack[T]) At(i int) T {
	return s[i]
}
