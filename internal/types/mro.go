package types

import "fmt"

// computeC3MRO linearises self's method resolution order from its direct
// bases using the C3 algorithm (§4.D), adapted from the teacher's
// VM.ComputeC3MRO (internal/runtime/builtins_classes.go) into a pure
// function over (self, bases) instead of a VM method, since MRO
// computation here needs no interpreter state beyond the types involved.
func computeC3MRO(self *Type, bases []*Type) ([]*Type, error) {
	if len(bases) == 0 {
		return []*Type{self}, nil
	}

	var toMerge [][]*Type
	for _, base := range bases {
		baseMRO := make([]*Type, len(base.mro))
		copy(baseMRO, base.mro)
		toMerge = append(toMerge, baseMRO)
	}
	basesCopy := make([]*Type, len(bases))
	copy(basesCopy, bases)
	toMerge = append(toMerge, basesCopy)

	result := []*Type{self}

	for {
		var nonEmpty [][]*Type
		for _, list := range toMerge {
			if len(list) > 0 {
				nonEmpty = append(nonEmpty, list)
			}
		}
		toMerge = nonEmpty

		if len(toMerge) == 0 {
			break
		}

		// A "good head" is a candidate that does not appear in the tail
		// (position 1+) of any list under consideration; ties are broken
		// deterministically by taking the first list's head that
		// qualifies, the same left-to-right bias CPython's C3 uses.
		var candidate *Type
		for _, list := range toMerge {
			head := list[0]
			inTail := false
			for _, other := range toMerge {
				for i := 1; i < len(other); i++ {
					if other[i] == head {
						inTail = true
						break
					}
				}
				if inTail {
					break
				}
			}
			if !inTail {
				candidate = head
				break
			}
		}

		if candidate == nil {
			return nil, typeErrorf("cannot create a consistent method resolution order (MRO) for bases %s",
				formatBaseNames(bases))
		}

		result = append(result, candidate)
		for i, list := range toMerge {
			if len(list) > 0 && list[0] == candidate {
				toMerge[i] = list[1:]
			}
		}
	}

	return result, nil
}

func formatBaseNames(bases []*Type) string {
	s := ""
	for i, b := range bases {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%q", b.name)
	}
	return s
}
