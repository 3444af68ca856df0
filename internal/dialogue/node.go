// Package dialogue runs scripted, branching text conversations: a tree
// of Output/Prompt/Repeat nodes authored in yaml, resolved against a
// caller-supplied prompt/output channel.
package dialogue

import "regexp"

// Kind discriminates the node variants of the conversation tree.
type Kind int

const (
	// KindOutput prints a line or block of text; no branching.
	KindOutput Kind = iota
	// KindPrompt asks a question and branches on the regex-matched reply.
	KindPrompt
	// KindRepeat re-asks the enclosing prompt.
	KindRepeat
	// KindText is a terminal literal: the conversation ends on it.
	KindText
)

// Node is one vertex of a conversation tree.
type Node struct {
	Kind Kind

	// Text is the body of an Output node or the literal of a terminal.
	Text string

	// Question, Responses and Default are set on Prompt nodes only.
	// Responses keep the declaration order of the script: the first
	// matching pattern wins.
	Question  string
	Responses []Response
	Default   *Node
}

// Response pairs a case-insensitive pattern with the branch it selects.
type Response struct {
	Raw     string
	Pattern *regexp.Regexp
	Node    *Node
}

// match returns the first branch whose pattern matches input, or nil.
func (n *Node) match(input string) *Node {
	for _, r := range n.Responses {
		if r.Pattern.MatchString(input) {
			return r.Node
		}
	}
	return nil
}
