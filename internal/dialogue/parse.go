package dialogue

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Dialogue holds the named conversations of a script. Parsed once at
// startup and traversed read-only by every connection.
type Dialogue struct {
	conversations map[string]*Node
}

// Load reads and parses a dialogue script from a yaml file.
func Load(path string) (*Dialogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds the conversation trees from a yaml document of the form
//
//	conversations:
//	  visitor:
//	    prompt: "Who dis?"
//	    responses:
//	      "^$": {repeat: true}
//	      "bye": {output: "Farewell!"}
//	    default: "a stranger"
//
// Node variants are picked by an explicit discriminant key: "output",
// "prompt", "repeat", or a plain scalar for a terminal literal.
func Parse(data []byte) (*Dialogue, error) {
	var doc struct {
		Conversations yaml.Node `yaml:"conversations"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ошибка разбора сценария диалога: %w", err)
	}
	if doc.Conversations.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("сценарий диалога должен содержать маппинг conversations")
	}

	d := &Dialogue{conversations: make(map[string]*Node)}
	content := doc.Conversations.Content
	for i := 0; i < len(content); i += 2 {
		name := content[i].Value
		node, err := walkNode(content[i+1])
		if err != nil {
			return nil, fmt.Errorf("разговор %q: %w", name, err)
		}
		d.conversations[name] = node
	}
	return d, nil
}

// Conversation looks up a named conversation. An unknown name is a
// configuration error, surfaced at startup validation rather than on
// first use.
func (d *Dialogue) Conversation(name string) (*Node, error) {
	n, ok := d.conversations[name]
	if !ok {
		return nil, fmt.Errorf("неизвестный разговор в сценарии: %q", name)
	}
	return n, nil
}

// Validate checks that every required conversation exists.
func (d *Dialogue) Validate(names ...string) error {
	for _, name := range names {
		if _, err := d.Conversation(name); err != nil {
			return err
		}
	}
	return nil
}

// walkNode dispatches one yaml node to its variant by discriminant key.
func walkNode(y *yaml.Node) (*Node, error) {
	switch y.Kind {
	case yaml.ScalarNode:
		return &Node{Kind: KindText, Text: y.Value}, nil
	case yaml.MappingNode:
		return walkMapping(y)
	default:
		return nil, fmt.Errorf("строка %d: узел диалога должен быть скаляром или маппингом", y.Line)
	}
}

func walkMapping(y *yaml.Node) (*Node, error) {
	keys := make(map[string]*yaml.Node, len(y.Content)/2)
	for i := 0; i < len(y.Content); i += 2 {
		keys[y.Content[i].Value] = y.Content[i+1]
	}

	switch {
	case keys["output"] != nil:
		return &Node{Kind: KindOutput, Text: keys["output"].Value}, nil

	case keys["repeat"] != nil:
		return &Node{Kind: KindRepeat}, nil

	case keys["prompt"] != nil:
		node := &Node{Kind: KindPrompt, Question: keys["prompt"].Value}
		if resp := keys["responses"]; resp != nil {
			if resp.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("строка %d: responses должен быть маппингом", resp.Line)
			}
			// Порядок объявления в сценарии сохраняется: первый
			// совпавший паттерн выигрывает.
			for i := 0; i < len(resp.Content); i += 2 {
				pattern, err := regexp.Compile("(?i)" + resp.Content[i].Value)
				if err != nil {
					return nil, fmt.Errorf("строка %d: неверный паттерн %q: %w",
						resp.Content[i].Line, resp.Content[i].Value, err)
				}
				child, err := walkNode(resp.Content[i+1])
				if err != nil {
					return nil, err
				}
				node.Responses = append(node.Responses, Response{
					Raw:     resp.Content[i].Value,
					Pattern: pattern,
					Node:    child,
				})
			}
		}
		if def := keys["default"]; def != nil {
			child, err := walkNode(def)
			if err != nil {
				return nil, err
			}
			node.Default = child
		}
		return node, nil

	default:
		return nil, fmt.Errorf("строка %d: узел диалога без дискриминанта (output/prompt/repeat)", y.Line)
	}
}
