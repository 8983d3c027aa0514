package selection

import (
	"testing"

	"github.com/pymerp/gastro-catalog/internal/model"
	"github.com/stretchr/testify/assert"
)

func step(groupID string, min, max int, required bool) model.ModifierStep {
	return model.ModifierStep{
		ModifierGroupID: groupID,
		StepOrder:       1,
		MinSelection:    min,
		MaxSelection:    max,
		IsRequired:      required,
	}
}

func TestApplySingleChoiceReplaces(t *testing.T) {
	s := NewState()
	radio := step("size", 0, 1, true)

	s.Apply(radio, "small")
	assert.Equal(t, []string{"small"}, s.Selected("size"))

	// selecting another option replaces, it does not accumulate
	s.Apply(radio, "large")
	assert.Equal(t, []string{"large"}, s.Selected("size"))

	// re-selecting the current option is not a toggle
	s.Apply(radio, "large")
	assert.Equal(t, []string{"large"}, s.Selected("size"))
}

func TestApplyMultiChoiceTogglesAndCaps(t *testing.T) {
	s := NewState()
	multi := step("toppings", 0, 2, false)

	s.Apply(multi, "cheese")
	s.Apply(multi, "bacon")
	assert.Equal(t, []string{"cheese", "bacon"}, s.Selected("toppings"))

	// at max, adding a third is rejected
	s.Apply(multi, "onion")
	assert.Equal(t, []string{"cheese", "bacon"}, s.Selected("toppings"))

	// deselecting is always allowed
	s.Apply(multi, "cheese")
	assert.Equal(t, []string{"bacon"}, s.Selected("toppings"))

	s.Apply(multi, "onion")
	assert.Equal(t, []string{"bacon", "onion"}, s.Selected("toppings"))
}

func TestApplyZeroMaxAdmitsNothing(t *testing.T) {
	s := NewState()
	s.Apply(step("sauces", 0, 0, false), "ketchup")
	assert.Empty(t, s.Selected("sauces"))
}

func TestSetSelectedDeduplicates(t *testing.T) {
	s := NewState()
	s.SetSelected("toppings", []string{"a", "b", "a", "c", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, s.Selected("toppings"))
}

func TestReconcileTrimsToFirstOnSingleChoice(t *testing.T) {
	// pre-existing inconsistent data: two ids selected for a max=1 step
	s := NewState()
	s.SetSelected("size", []string{"small", "large"})

	s.Reconcile([]model.ModifierStep{step("size", 0, 1, true)})
	assert.Equal(t, []string{"small"}, s.Selected("size"))
}

func TestReconcileLeavesMultiChoiceAlone(t *testing.T) {
	s := NewState()
	s.SetSelected("toppings", []string{"a", "b"})

	s.Reconcile([]model.ModifierStep{step("toppings", 0, 3, false)})
	assert.Equal(t, []string{"a", "b"}, s.Selected("toppings"))
}

func TestStepSatisfiedAndComplete(t *testing.T) {
	steps := []model.ModifierStep{
		step("size", 0, 1, true),
		step("toppings", 0, 3, false),
	}

	s := NewState()
	assert.False(t, StepSatisfied(steps[0], s))
	assert.True(t, StepSatisfied(steps[1], s))
	assert.False(t, Complete(steps, s))

	s.Apply(steps[0], "small")
	assert.True(t, Complete(steps, s))
}

func TestStepSatisfiedNeverTrueForInvalidConfig(t *testing.T) {
	bad := step("size", 2, 1, false)
	s := NewState()
	s.SetSelected("size", []string{"a", "b"})
	assert.False(t, StepSatisfied(bad, s))
}

func TestValidateReportsPerStepIssues(t *testing.T) {
	steps := []model.ModifierStep{
		{ModifierGroupID: "size", StepOrder: 1, MinSelection: 0, MaxSelection: 1, IsRequired: true},
		{ModifierGroupID: "toppings", StepOrder: 2, MinSelection: 0, MaxSelection: 2},
		{ModifierGroupID: "broken", StepOrder: 3, MinSelection: 3, MaxSelection: 1},
	}

	s := NewState()
	s.SetSelected("toppings", []string{"a", "b", "c"})

	issues := Validate(steps, s)
	assert.Len(t, issues, 3)
	assert.Equal(t, Issue{StepOrder: 1, ModifierGroupID: "size", Problem: ProblemBelowMin}, issues[0])
	assert.Equal(t, Issue{StepOrder: 2, ModifierGroupID: "toppings", Problem: ProblemAboveMax}, issues[1])
	assert.Equal(t, Issue{StepOrder: 3, ModifierGroupID: "broken", Problem: ProblemInvalidConfig}, issues[2])
}

func TestValidateAcceptsSatisfiedSelection(t *testing.T) {
	steps := []model.ModifierStep{
		{ModifierGroupID: "size", StepOrder: 1, MinSelection: 0, MaxSelection: 1, IsRequired: true},
	}
	s := NewState()
	s.SetSelected("size", []string{"small"})
	assert.Nil(t, Validate(steps, s))
}
