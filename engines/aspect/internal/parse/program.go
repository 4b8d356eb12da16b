package parse

// Program is the compiled form of an Aspect source text.
type Program struct {
	// Instructions holds the classified lines in source order.
	Instructions []Instruction

	// TruncatedAt is the 1-based line number where segmentation stopped
	// because a line could not be split, or zero when the whole source was
	// segmented.
	TruncatedAt int
}

// Parse segments source into lines and classifies each one.
func Parse(source string) *Program {
	segments, truncatedAt := SegmentSource(source)

	prog := &Program{TruncatedAt: truncatedAt}
	if len(segments) == 0 {
		return prog
	}

	prog.Instructions = make([]Instruction, 0, len(segments))
	for _, seg := range segments {
		prog.Instructions = append(prog.Instructions, classify(seg))
	}
	return prog
}

// classify resolves a segment against the dispatch rules. The declare
// keyword is probed first, then a call-shaped operator, and the if keyword
// only after both.
func classify(seg Segment) Instruction {
	ins := Instruction{Kind: KindNoOp, Line: seg.Line, Raw: seg.Raw}

	if seg.Operator == "declare" {
		if name, value, err := ParseDeclaration(seg.Raw); err == nil {
			ins.Kind = KindDeclaration
			ins.Name = name
			ins.Value = value
			return ins
		}
	}

	if params, ok := ParseCallSignature(seg.Operator); ok {
		ins.Kind = KindCall
		ins.CallText = seg.Operator
		ins.Params = params
		return ins
	}

	if seg.Operator == "if" {
		ins.Kind = KindConditional
		ins.Cond = classifyConditional(seg.Raw)
		return ins
	}

	return ins
}

// classifyConditional evaluates the comparison gate of an "if" line. The
// comparison runs over literals only, so its outcome is fixed at parse
// time; registry lookups for the action stay a run-time concern.
func classifyConditional(line string) *Conditional {
	header, err := ParseConditionHeader(line)
	if err != nil {
		return &Conditional{HeaderErr: true}
	}

	cond := &Conditional{Header: header}
	result, err := EvaluateComparison(header)
	if err != nil {
		cond.CondErr = true
		return cond
	}

	cond.Result = result
	if !result {
		return cond
	}

	action, err := ParseActionTail(line)
	if err != nil {
		return cond
	}
	cond.Action = classifyAction(action)
	return cond
}

// classifyAction records both readings of the action text so the evaluator
// can pick one once the registry contents are known.
func classifyAction(text string) *Action {
	action := &Action{Text: text}

	if params, ok := ParseCallSignature(text); ok {
		action.IsCall = true
		action.Params = params
	}
	if name, value, err := ParseDeclaration(text); err == nil {
		action.IsDecl = true
		action.Name = name
		action.Value = value
	}
	return action
}
