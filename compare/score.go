package compare

// Score implements the aggregate score formula of spec §4.6 exactly:
// collect a clamped dissimilarity value per meaningful element, then
// report the mean NCS (1 - value) as a percentage. clamp(v) = 1.0 if
// v >= cfg.SimClamp, else v. Every value goes through clamp: similar
// elements contribute their clamped matched distance, identical
// elements clamp(0.0) (0.0 unless SimClamp is 0), and included
// new/deleted elements clamp(1.0), which is always 1.0.
func (s *Session) Score() float64 {
	values := s.scoreVector()
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += 1 - v
	}
	return 100 * sum / float64(len(values))
}

func (s *Session) scoreVector() []float64 {
	var values []float64

	// similar gets its matched distance, clamped.
	for _, e := range s.similar {
		w, ok := s.similarTo[e]
		if !ok {
			continue
		}
		d, _ := s.Distance(e, w)
		values = append(values, s.clamp(d))
	}

	// identical contributes clamp(0.0) once per element (spec §4.6);
	// that is 0.0 for any SimClamp above 0.
	for range s.identical {
		values = append(values, s.clamp(0.0))
	}

	if s.cfg.IncludeNew {
		for range s.newElements {
			values = append(values, s.clamp(1.0))
		}
	}
	if s.cfg.IncludeDeleted {
		for range s.deletedElements {
			values = append(values, s.clamp(1.0))
		}
	}

	return values
}

func (s *Session) clamp(v float64) float64 {
	if v >= s.cfg.SimClamp {
		return 1.0
	}
	return v
}
