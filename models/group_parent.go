package models

// checkGroupParent enforces the two-level group shape on a candidate product:
// it may not be its own parent, the parent must exist and be a header itself,
// and a product that still has children cannot become a child. parent is the
// resolved parent row (nil when no such product exists) and children is the
// candidate's current child count.
func checkGroupParent(candidate *Product, parent *Product, children int64) error {
	if candidate.GroupParentID == nil {
		return nil
	}
	if candidate.ID != 0 && *candidate.GroupParentID == candidate.ID {
		return ErrInvalidGroupParent
	}
	if parent == nil || parent.GroupParentID != nil {
		return ErrInvalidGroupParent
	}
	if children > 0 {
		return ErrInvalidGroupParent
	}
	return nil
}
