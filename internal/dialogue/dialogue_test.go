package dialogue

import (
	"strings"
	"testing"
)

const script = `
conversations:
  visitor:
    prompt: "Who dis?"
    responses:
      "^$":
        repeat: true
      "^(bye|quit)":
        output: "Leaving so soon?"
      "friend":
        prompt: "A friend of whom?"
        responses:
          "simon":
            output: "Any friend of Simon is welcome here."
    default: "a stranger"
  parting_message:
    output: "Thanks for watching!"
`

func parseScript(t *testing.T) *Dialogue {
	t.Helper()
	d, err := Parse([]byte(script))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return d
}

// channel is a scripted stub for the prompt/output pair.
type channel struct {
	replies []string
	asked   []string
	printed []string
}

func (c *channel) prompt(question string) (string, error) {
	c.asked = append(c.asked, question)
	if len(c.replies) == 0 {
		return "", nil
	}
	r := c.replies[0]
	c.replies = c.replies[1:]
	return r, nil
}

func (c *channel) output(text string) error {
	c.printed = append(c.printed, text)
	return nil
}

func TestParseKeepsResponseOrder(t *testing.T) {
	d := parseScript(t)
	visitor, err := d.Conversation("visitor")
	if err != nil {
		t.Fatalf("Conversation failed: %v", err)
	}
	if visitor.Kind != KindPrompt {
		t.Fatalf("visitor should be a Prompt, got %v", visitor.Kind)
	}
	if len(visitor.Responses) != 3 {
		t.Fatalf("Expected 3 responses, got %d", len(visitor.Responses))
	}
	if visitor.Responses[0].Raw != "^$" || visitor.Responses[2].Raw != "friend" {
		t.Errorf("Declaration order lost: %v, %v", visitor.Responses[0].Raw, visitor.Responses[2].Raw)
	}
	if visitor.Default == nil || visitor.Default.Kind != KindText {
		t.Error("default should parse as a terminal literal")
	}
}

func TestUnknownConversationIsError(t *testing.T) {
	d := parseScript(t)
	if _, err := d.Conversation("no_such_thing"); err == nil {
		t.Error("Expected error for unknown conversation name")
	}
	if err := d.Validate("visitor", "parting_message"); err != nil {
		t.Errorf("Validate failed on present conversations: %v", err)
	}
	if err := d.Validate("visitor", "missing"); err == nil {
		t.Error("Validate should fail on a missing conversation")
	}
}

func TestParseRejectsUntaggedNode(t *testing.T) {
	bad := "conversations:\n  x:\n    banana: 1\n"
	if _, err := Parse([]byte(bad)); err == nil {
		t.Error("Expected error for a node without discriminant")
	}
}

func TestResolveOutput(t *testing.T) {
	d := parseScript(t)
	node, _ := d.Conversation("parting_message")

	ch := &channel{}
	trace, err := Resolve(node, ch.prompt, ch.output)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if trace.Output != "Thanks for watching!" {
		t.Errorf("Unexpected trace: %+v", trace)
	}
	if len(ch.printed) != 1 || ch.printed[0] != "Thanks for watching!" {
		t.Errorf("Output not delivered: %v", ch.printed)
	}
}

func TestResolveMatchIsCaseInsensitive(t *testing.T) {
	d := parseScript(t)
	node, _ := d.Conversation("visitor")

	ch := &channel{replies: []string{"BYE now"}}
	trace, err := Resolve(node, ch.prompt, ch.output)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if trace.Input != "BYE now" {
		t.Errorf("Raw input lost: %+v", trace)
	}
	if trace.Resolved == nil || trace.Resolved.Output != "Leaving so soon?" {
		t.Errorf("Expected the bye branch, got %+v", trace.Resolved)
	}
}

func TestResolveNestedPrompt(t *testing.T) {
	d := parseScript(t)
	node, _ := d.Conversation("visitor")

	ch := &channel{replies: []string{"a friend", "of Simon"}}
	trace, err := Resolve(node, ch.prompt, ch.output)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(ch.asked) != 2 || ch.asked[1] != "A friend of whom?" {
		t.Errorf("Nested prompt not asked: %v", ch.asked)
	}
	leaf := trace.Leaf()
	if leaf.Output != "Any friend of Simon is welcome here." {
		t.Errorf("Unexpected leaf: %+v", leaf)
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	d := parseScript(t)
	node, _ := d.Conversation("visitor")

	ch := &channel{replies: []string{"martin"}}
	trace, err := Resolve(node, ch.prompt, ch.output)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if trace.Resolved == nil || trace.Resolved.Value != "a stranger" {
		t.Errorf("Expected default literal, got %+v", trace.Resolved)
	}
	if !trace.Terminal() {
		t.Error("A literal resolution should count as terminal")
	}
}

func TestRepeatReasksSamePrompt(t *testing.T) {
	d := parseScript(t)
	node, _ := d.Conversation("visitor")

	// Пустой ответ попадает в "^$" -> repeat: тот же вопрос снова.
	ch := &channel{replies: []string{"", "", "bye"}}
	trace, err := Resolve(node, ch.prompt, ch.output)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	if len(ch.asked) != 3 {
		t.Fatalf("Expected 3 asks, got %d", len(ch.asked))
	}
	for _, q := range ch.asked {
		if q != "Who dis?" {
			t.Errorf("Repeat must re-ask the same question, got %q", q)
		}
	}
	if trace.Resolved == nil || trace.Resolved.Output != "Leaving so soon?" {
		t.Errorf("Final branch wrong: %+v", trace.Resolved)
	}
}

func TestResolveNoMatchNoDefault(t *testing.T) {
	yamlDoc := `
conversations:
  strict:
    prompt: "continue?"
    responses:
      "^y":
        output: "ok"
`
	d, err := Parse([]byte(yamlDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	node, _ := d.Conversation("strict")

	ch := &channel{replies: []string{"nope"}}
	trace, err := Resolve(node, ch.prompt, ch.output)
	if err != nil {
		t.Fatalf("No match + no default must not be an error: %v", err)
	}
	if trace.Resolved != nil {
		t.Errorf("Expected empty resolution, got %+v", trace.Resolved)
	}
}

func TestPromptDefaultOverRepeatBranch(t *testing.T) {
	yamlDoc := `
conversations:
  confirm:
    prompt: "continue?"
    responses:
      "^y":
        output: "ok"
      "^n":
        repeat: true
    default:
      output: "ok"
`
	d, err := Parse([]byte(yamlDoc))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	node, _ := d.Conversation("confirm")

	ch := &channel{replies: []string{"maybe"}}
	trace, err := Resolve(node, ch.prompt, ch.output)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if trace.Prompt != "continue?" || trace.Input != "maybe" {
		t.Errorf("Trace header wrong: %+v", trace)
	}
	if trace.Resolved == nil || trace.Resolved.Output != "ok" {
		t.Errorf("Expected default output trace, got %+v", trace.Resolved)
	}
	if !strings.Contains(strings.Join(ch.printed, " "), "ok") {
		t.Errorf("Default output not printed: %v", ch.printed)
	}
}
