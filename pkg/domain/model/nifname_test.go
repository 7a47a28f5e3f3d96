// 指示: miu200521358
package model

import "testing"

func TestToSceneName(t *testing.T) {
	got := ToSceneName("NPC L Hand [LHnd]")
	want := "NPC_s_L_s_Hand_s__ob_LHnd_cb_"
	if got != want {
		t.Fatalf("scene name mismatch: %s", got)
	}
}

func TestToNifName(t *testing.T) {
	got := ToNifName("NPC_s_L_s_Hand_s__ob_LHnd_cb_")
	want := "NPC L Hand [LHnd]"
	if got != want {
		t.Fatalf("nif name mismatch: %s", got)
	}
}

func TestNifNameRoundTrip(t *testing.T) {
	names := []string{
		"NPC Spine [Spn0]",
		"NPC L UpperArm [LUar]",
		"CME Body [Body]",
		"Plain",
		"[ ]",
	}
	for _, name := range names {
		if got := ToNifName(ToSceneName(name)); got != name {
			t.Fatalf("round trip mismatch: %s -> %s", name, got)
		}
	}
}

func TestToSceneNamePassThrough(t *testing.T) {
	if got := ToSceneName("Bip01_Head"); got != "Bip01_Head" {
		t.Fatalf("pass-through mismatch: %s", got)
	}
}
