package renderer

import "unsafe"

var end = "\x00"
var endChar byte = '\x00'

// Vulkan wants null terminated strings.
func safeString(s string) string {
	if len(s) == 0 {
		return end
	}
	if s[len(s)-1] != endChar {
		return s + end
	}
	return s
}

func safeStrings(list []string) []string {
	out := make([]string, len(list))
	for i := range list {
		out[i] = safeString(list[i])
	}
	return out
}

func unsafeAdd(ptr unsafe.Pointer, offset uint64) unsafe.Pointer {
	return unsafe.Pointer(uintptr(ptr) + uintptr(offset))
}

func alignUp(v, align uint64) uint64 {
	m := v % align
	if m == 0 {
		return v
	}
	return (v - m) + align
}
