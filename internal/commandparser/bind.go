package commandparser

// Bind resolves a tokenized command line against the declared arguments. On error no
// namespace is returned.
func (p *Parser) Bind(res Result) (*Namespace, error) {
	ns := &Namespace{args: map[string][]string{}}

	n := len(p.positionals)
	if len(res.Positionals) < n {
		missing := p.positionals[n-1]
		if p.optionalPositionals {
			missing = nil
			for _, a := range p.positionals[len(res.Positionals):] {
				if a.Required {
					missing = a
					break
				}
			}
		}
		if missing != nil {
			return nil, &InputError{Name: missing.Name, err: ErrInsufficientRequiredArgument}
		}
	}
	for i, a := range p.positionals {
		if i >= len(res.Positionals) {
			break
		}
		if i == n-1 && len(res.Positionals[i:]) > 1 {
			ns.args[a.Name] = append([]string{}, res.Positionals[i:]...)
		} else {
			ns.args[a.Name] = []string{res.Positionals[i]}
		}
	}

	for _, a := range p.optionals {
		if !a.Required {
			continue
		}
		supplied := false
		for _, g := range res.Optionals {
			if g.Flag == a.Name || (a.Short != "" && g.Flag == a.Short) {
				supplied = true
				break
			}
		}
		if !supplied {
			return nil, &InputError{Name: a.Name, err: ErrInsufficientRequiredArgument}
		}
	}

	resolved := make([]*Argument, len(res.Optionals))
	for i, g := range res.Optionals {
		a, ok := p.names[g.Flag]
		if !ok || a.Positional {
			return nil, &InputError{Name: g.Flag, err: ErrInvalidArgumentName}
		}
		resolved[i] = a
	}

	seen := map[*Argument]bool{}
	for _, a := range resolved {
		if seen[a] {
			return nil, &InputError{Name: a.Name, err: ErrDuplicatedArgument}
		}
		seen[a] = true
	}

	for i, a := range resolved {
		ns.args[a.Name] = append([]string{}, res.Optionals[i].Values...)
	}
	return ns, nil
}
