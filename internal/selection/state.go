package selection

import "github.com/pymerp/gastro-catalog/internal/model"

// State is a live selection for one scope, keyed by modifier group id.
// Selections are stored deduplicated in insertion order.
type State struct {
	byGroup map[string][]string
}

func NewState() *State {
	return &State{byGroup: make(map[string][]string)}
}

// Selected returns a copy of the current selection for a group.
func (s *State) Selected(groupID string) []string {
	ids := s.byGroup[groupID]
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func (s *State) IsSelected(groupID, itemID string) bool {
	for _, id := range s.byGroup[groupID] {
		if id == itemID {
			return true
		}
	}
	return false
}

// SetSelected replaces the selection for a group, dropping duplicates while
// keeping first-occurrence order.
func (s *State) SetSelected(groupID string, itemIDs []string) {
	seen := make(map[string]struct{}, len(itemIDs))
	next := make([]string, 0, len(itemIDs))
	for _, id := range itemIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		next = append(next, id)
	}
	s.byGroup[groupID] = next
}

// Apply records one click on an item under the given step.
//
// Single-choice steps (max <= 1) behave like radio buttons: a new selection
// replaces whatever was selected before, and re-selecting the current item is
// a no-op rather than a toggle. Multi-choice steps toggle membership and
// reject additions past the cap.
func (s *State) Apply(step model.ModifierStep, itemID string) {
	groupID := step.ModifierGroupID
	selected := s.byGroup[groupID]
	already := s.IsSelected(groupID, itemID)

	if step.MaxSelection <= 1 {
		// max = 0 admits nothing; max = 1 is a radio where selecting a new
		// item replaces the previous one.
		if !already && step.MaxSelection == 1 {
			s.byGroup[groupID] = []string{itemID}
		}
		return
	}

	if already {
		next := make([]string, 0, len(selected)-1)
		for _, id := range selected {
			if id != itemID {
				next = append(next, id)
			}
		}
		s.byGroup[groupID] = next
		return
	}

	if !CanSelectMore(step.MaxSelection, SelectedCount(selected), false) {
		return
	}
	s.byGroup[groupID] = append(selected, itemID)
}

// Reconcile trims selections after step definitions change: any group whose
// step became single-choice keeps only its first selected element. Runs on
// every definition change, not only on user interaction.
func (s *State) Reconcile(steps []model.ModifierStep) {
	for _, step := range steps {
		if step.MaxSelection > 1 {
			continue
		}
		selected := s.byGroup[step.ModifierGroupID]
		if len(selected) <= 1 {
			continue
		}
		s.byGroup[step.ModifierGroupID] = selected[:1]
	}
}

// StepSatisfied is true when the step's effective minimum is met and the step
// is configured satisfiably.
func StepSatisfied(step model.ModifierStep, s *State) bool {
	min := EffectiveMin(step.MinSelection, step.IsRequired)
	if IsInvalidConfig(step.MaxSelection, min) {
		return false
	}
	return RemainingToMin(min, SelectedCount(s.byGroup[step.ModifierGroupID])) == 0
}

// Complete is the conjunction of StepSatisfied across all steps of a scope.
func Complete(steps []model.ModifierStep, s *State) bool {
	for _, step := range steps {
		if !StepSatisfied(step, s) {
			return false
		}
	}
	return true
}

// Issue describes why a submitted selection fails a step.
type Issue struct {
	StepOrder       int    `json:"stepOrder"`
	ModifierGroupID string `json:"modifierGroupId"`
	Problem         string `json:"problem"`
}

const (
	ProblemInvalidConfig = "invalid_config"
	ProblemBelowMin      = "below_min"
	ProblemAboveMax      = "above_max"
)

// Validate checks an externally submitted selection against the steps of a
// scope, e.g. at order time. A nil return means the selection is acceptable.
func Validate(steps []model.ModifierStep, s *State) []Issue {
	var issues []Issue
	for _, step := range steps {
		min := EffectiveMin(step.MinSelection, step.IsRequired)
		count := SelectedCount(s.byGroup[step.ModifierGroupID])
		switch {
		case IsInvalidConfig(step.MaxSelection, min):
			issues = append(issues, Issue{StepOrder: step.StepOrder, ModifierGroupID: step.ModifierGroupID, Problem: ProblemInvalidConfig})
		case RemainingToMin(min, count) > 0:
			issues = append(issues, Issue{StepOrder: step.StepOrder, ModifierGroupID: step.ModifierGroupID, Problem: ProblemBelowMin})
		case step.MaxSelection > 0 && count > step.MaxSelection:
			issues = append(issues, Issue{StepOrder: step.StepOrder, ModifierGroupID: step.ModifierGroupID, Problem: ProblemAboveMax})
		}
	}
	return issues
}
