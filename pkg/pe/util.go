package pe

func MaxUInt32(x, y uint32) uint32 {
	if x > y {
		return x
	}
	return y
}

func MinUInt32(x, y uint32) uint32 {
	if x < y {
		return x
	}
	return y
}

// Returns whether this value is a power of 2
func PowerOfTwo(val uint32) bool {
	return (val != 0) && (val&(val-1)) == 0x0
}

// Helper functions to align numbers

func AlignDownUInt32(x, align uint32) uint32 {
	return x & ^(align - 1)
}

func AlignUpUInt32(x, align uint32) uint32 {
	if (x & (align - 1)) != 0 {
		return AlignDownUInt32(x, align) + align
	}
	return x
}

func MemsetRepeat(a []byte, v byte) {
	if len(a) == 0 {
		return
	}
	a[0] = v
	for bp := 1; bp < len(a); bp *= 2 {
		copy(a[bp:], a[:bp])
	}
}
