package dialogue

// PromptFunc asks the visitor a question and returns the raw reply.
type PromptFunc func(question string) (string, error)

// OutputFunc shows a block of text to the visitor.
type OutputFunc func(text string) error

// Trace records what was asked, answered and resolved. Exactly one
// shape is populated per node: {Prompt, Input, Resolved} for a prompt,
// {Output} for an output, {Value} for a terminal literal.
type Trace struct {
	Prompt   string `yaml:"prompt,omitempty"`
	Input    string `yaml:"input,omitempty"`
	Resolved *Trace `yaml:"resolved,omitempty"`

	Output string `yaml:"output,omitempty"`
	Value  string `yaml:"value,omitempty"`
}

// Leaf follows the resolved chain to the final node of the trace.
func (t *Trace) Leaf() *Trace {
	if t == nil {
		return nil
	}
	for t.Resolved != nil {
		t = t.Resolved
	}
	return t
}

// Terminal reports whether the conversation ended on a literal answer
// or an unmatched prompt instead of an Output.
func (t *Trace) Terminal() bool {
	leaf := t.Leaf()
	return leaf == nil || leaf.Output == ""
}

// Resolve walks a conversation tree against the injected channel pair.
// The engine does no I/O of its own, which keeps it testable with stub
// functions. Resolution is a pure function of (node, channel): the only
// state that survives is the returned trace.
func Resolve(n *Node, promptFn PromptFunc, outputFn OutputFunc) (*Trace, error) {
	switch n.Kind {
	case KindOutput:
		if err := outputFn(n.Text); err != nil {
			return nil, err
		}
		return &Trace{Output: n.Text}, nil

	case KindText:
		return &Trace{Value: n.Text}, nil

	case KindRepeat:
		// Repeat вне Prompt повторять нечего.
		return nil, nil

	case KindPrompt:
		// Repeat раскручивается здесь же, на уровне самого Prompt:
		// переспрашиваем тот же вопрос, не перезапуская разговор.
		for {
			input, err := promptFn(n.Question)
			if err != nil {
				return nil, err
			}

			next := n.match(input)
			if next == nil {
				next = n.Default
			}
			if next == nil {
				// Ни совпадения, ни default: пустая резолюция без ошибки.
				return &Trace{Prompt: n.Question, Input: input}, nil
			}
			if next.Kind == KindRepeat {
				continue
			}

			resolved, err := Resolve(next, promptFn, outputFn)
			if err != nil {
				return nil, err
			}
			return &Trace{Prompt: n.Question, Input: input, Resolved: resolved}, nil
		}
	}
	return nil, nil
}
