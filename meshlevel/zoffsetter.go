package meshlevel

// ZOffsetter reports the Z correction for a bed position.
type ZOffsetter interface {
	OffsetZ(x, y float64) (bool, float64)
}
