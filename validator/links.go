package validator

// validateLink compares two links or two images: the label as inline
// content, then the destination.
func validateLink(w walker) *Result {
	r := validateContainer(w)
	r.Join(validateCurly(w, w.schema.Node().Destination, w.input.Node().Destination))
	return r
}
