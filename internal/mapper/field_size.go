package mapper

// FieldSize returns the store size in bytes of a field of descriptor d,
// per the storage mapping (spec.md §4.3.1/§4.3.3's getFieldSize).
func (m *Mapper) FieldSize(d Descriptor) (int, error) {
	size, err := m.Layout.StoreSize(m.StorageType(d))
	if err != nil {
		return 0, &Error{Kind: ErrUnsupportedType, Detail: d.String(), Wrapped: err}
	}
	return size, nil
}

// FieldAlignment returns the required alignment in bytes of a field of
// descriptor d, applying the ARM 32-bit long/double override of spec.md
// §4.3.3: "field alignment for any J (long) or D (double) field is
// forced to 8 regardless of the generic 32-bit rule that would give 4."
//
// Per spec.md §9's open question, this override is applied to every
// long/double field, not only volatile or final ones — a deliberate
// conservatism carried from the source program, not a bug.
func (m *Mapper) FieldAlignment(d Descriptor) (int, error) {
	if m.Target.LongLongAlignOnARM32() && (d.Kind == KindLong || d.Kind == KindDouble) {
		return 8, nil
	}
	align, err := m.Layout.Alignment(m.StorageType(d))
	if err != nil {
		return 0, &Error{Kind: ErrUnsupportedType, Detail: d.String(), Wrapped: err}
	}
	return align, nil
}
