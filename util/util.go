// Package util holds small generic helpers shared by the interpreter core,
// kept free of any EVM-specific types so it can be imported from anywhere.
package util

import "fmt"

type ordered interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

func Max[T ordered](x, y T) T {
	if x > y {
		return x
	}
	return y
}

func Min[T ordered](x, y T) T {
	if x < y {
		return x
	}
	return y
}

func HexEnc(data []byte) string {
	return fmt.Sprintf("%x", data)
}
