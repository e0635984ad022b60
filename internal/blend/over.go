package blend

// SourceOverPremul composites premultiplied source over premultiplied destination.
// Formula: S + D * (1 - Sa)
func SourceOverPremul(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte) {
	invSa := 255 - sa
	return addClamp(sr, MulDiv255(dr, invSa)),
		addClamp(sg, MulDiv255(dg, invSa)),
		addClamp(sb, MulDiv255(db, invSa)),
		addClamp(sa, MulDiv255(da, invSa))
}

// SourceOver composites a straight-alpha source over a straight-alpha
// destination and returns a straight-alpha result.
//
// A fully transparent source returns the destination unchanged and a fully
// opaque source replaces it, so both ends of the opacity range are exact.
func SourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte) {
	switch sa {
	case 0:
		return dr, dg, db, da
	case 255:
		return sr, sg, sb, 255
	}

	pr, pg, pb, pa := SourceOverPremul(
		MulDiv255(sr, sa), MulDiv255(sg, sa), MulDiv255(sb, sa), sa,
		MulDiv255(dr, da), MulDiv255(dg, da), MulDiv255(db, da), da,
	)
	return unpremul(pr, pa), unpremul(pg, pa), unpremul(pb, pa), pa
}
