package layers

// dotProductInt8Uint8 computes sum(weights[i] * inputs[i]) over count terms -
// the affine transform's inner loop. Unrolled by 4; a build targeting a
// specific architecture could swap this for vector instructions without
// touching any caller.
func dotProductInt8Uint8(weights []int8, inputs []uint8, count int) int32 {
	var sum int32
	i := 0
	for ; i+4 <= count; i += 4 {
		sum += int32(weights[i]) * int32(inputs[i])
		sum += int32(weights[i+1]) * int32(inputs[i+1])
		sum += int32(weights[i+2]) * int32(inputs[i+2])
		sum += int32(weights[i+3]) * int32(inputs[i+3])
	}
	for ; i < count; i++ {
		sum += int32(weights[i]) * int32(inputs[i])
	}
	return sum
}
