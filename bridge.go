package wscrew

// BridgeLoops joins two aligned loops of equal length n with a strip of n-1 quads
// (loop1[k], loop1[k+1], loop2[k+1], loop2[k]). Loops of different lengths
// are not bridged and nil is returned.
func BridgeLoops(loop1, loop2 []int) [][4]int {
	if len(loop1) != len(loop2) || len(loop1) < 2 {
		return nil
	}
	faces := make([][4]int, 0, len(loop1)-1)
	for k := 0; k < len(loop1)-1; k++ {
		faces = append(faces, [4]int{loop1[k], loop1[k+1], loop2[k+1], loop2[k]})
	}
	return faces
}
