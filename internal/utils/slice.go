package utils

func MapSlice[T any, U any](s []T, mapper func(e T) U) []U {
	result := make([]U, len(s))

	for i, e := range s {
		result[i] = mapper(e)
	}

	return result
}

func FilterSlice[T any](s []T, filter func(e T) bool) []T {
	var result []T

	for _, e := range s {
		if filter(e) {
			result = append(result, e)
		}
	}

	return result
}

func EmptySliceIfNil[T any](slice []T) []T {
	if slice == nil {
		return []T{}
	}
	return slice
}
