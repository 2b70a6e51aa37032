package sketch

import "fmt"

// Fill greys stay in a light band so the dark strokes and labels remain
// readable on top.
const (
	greyMin = 216
	greyMax = 244
)

// greyForID picks a deterministic light grey for a node key.
func greyForID(id string) string {
	v := greyMin + int(hash(id, 0)%uint64(greyMax-greyMin+1))
	return fmt.Sprintf("#%02x%02x%02x", v, v, v)
}

// hash is FNV-1a with the seed folded into the offset basis, so the same
// string hashes differently under different seeds.
func hash(s string, seed uint64) uint64 {
	h := uint64(14695981039346656037) ^ seed
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}
