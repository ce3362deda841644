package dashboard

import (
	"strings"
	"sync"
)

// Option is a labeled token. Date ranges and header tabs are both options.
type Option struct {
	Label string `json:"label" yaml:"label"`
	Token string `json:"token" yaml:"token"`
}

// DateRangeOption names the options used by the date range pickers.
type DateRangeOption = Option

// OptionView is an option plus its selection flag.
type OptionView struct {
	Label    string `json:"label"`
	Token    string `json:"token"`
	Selected bool   `json:"selected"`
}

// SelectorView is the render-ready form of a Selector.
type SelectorView struct {
	Selected OptionView   `json:"selected"`
	Options  []OptionView `json:"options"`
}

// Selector holds exactly one selected option from a fixed set.
type Selector struct {
	mu       sync.RWMutex
	options  []Option
	selected int
}

// NewSelector builds a selector whose initial value is options[defaultIndex].
// Out-of-range defaults clamp to the first option.
func NewSelector(options []Option, defaultIndex int) *Selector {
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}
	cloned := make([]Option, len(options))
	copy(cloned, options)
	return &Selector{options: cloned, selected: defaultIndex}
}

// Select sets the option identified by token. It reports whether the
// selection changed so callers can skip redundant work.
func (s *Selector) Select(token string) (bool, error) {
	token = strings.TrimSpace(token)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, option := range s.options {
		if option.Token != token {
			continue
		}
		changed := i != s.selected
		s.selected = i
		return changed, nil
	}
	return false, validationError(TextCodeUnknownOption, "dashboard: unknown option %q", token).
		WithMetadata(map[string]any{"token": token, "allowed": s.tokensLocked()})
}

// Selected returns the current option. An empty selector returns the zero Option.
func (s *Selector) Selected() Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.options) == 0 {
		return Option{}
	}
	return s.options[s.selected]
}

// Options returns a copy of the option set.
func (s *Selector) Options() []Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Option, len(s.options))
	copy(out, s.options)
	return out
}

// View renders the selector.
func (s *Selector) View() SelectorView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	view := SelectorView{Options: make([]OptionView, 0, len(s.options))}
	for i, option := range s.options {
		item := OptionView{Label: option.Label, Token: option.Token, Selected: i == s.selected}
		if item.Selected {
			view.Selected = item
		}
		view.Options = append(view.Options, item)
	}
	return view
}

func (s *Selector) tokensLocked() []string {
	tokens := make([]string, len(s.options))
	for i, option := range s.options {
		tokens[i] = option.Token
	}
	return tokens
}
