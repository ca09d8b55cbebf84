package treeio

import "testing"

func TestValidateAcceptsMatchingTipSet(t *testing.T) {
	nwk := "(2,(1,(0):3):1);"
	if err := Validate(nwk, []string{"0", "1", "2"}); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestValidateRejectsMissingTip(t *testing.T) {
	nwk := "(2,(1,(0):3):1);"
	if err := Validate(nwk, []string{"0", "1", "2", "3"}); err == nil {
		t.Error("expected a tip-set mismatch error")
	}
}

func TestValidateRejectsMalformedNewick(t *testing.T) {
	if err := Validate("(2,(1,(0):3):1", []string{"0", "1", "2"}); err == nil {
		t.Error("expected a parse error for an unterminated newick string")
	}
}
