package util

func Back[T any](data []T) T {
	l := len(data)
	if l == 0 {
		panic("empty slice")
	} else if l == 1 {
		return data[0]
	}
	return data[l-1]
}

func Size[T any](data []T) int {
	return len(data)
}

func Empty[T any](data []T) bool {
	return Size(data) == 0
}

func Fill[T any](data []T, count int, val T) {
	for i := 0; i < count; i++ {
		data[i] = val
	}
}

func CopyTo[T any](src []T) []T {
	dst := make([]T, len(src))
	copy(dst, src)
	return dst
}
