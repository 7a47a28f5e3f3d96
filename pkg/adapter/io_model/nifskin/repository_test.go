// 指示: miu200521358
package nifskin

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/miu200521358/mu_skin2nif/pkg/domain/model"
	"github.com/miu200521358/mu_skin2nif/pkg/usecase/port/moutput"
)

func TestCanLoad(t *testing.T) {
	repository := NewNifSkinRepository()
	if !repository.CanLoad("body.musk") {
		t.Fatalf("musk extension must be loadable")
	}
	if !repository.CanLoad("BODY.MUSK") {
		t.Fatalf("extension check must be case insensitive")
	}
	if repository.CanLoad("body.nif") {
		t.Fatalf("unknown extension must be rejected")
	}
}

func TestInferName(t *testing.T) {
	repository := NewNifSkinRepository()
	if got := repository.InferName(filepath.Join("work", "femalebody_1.musk")); got != "femalebody_1" {
		t.Fatalf("inferred name mismatch: %s", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	skin := &model.NifSkin{
		Name:        "Body [Ref]",
		Bones:       []string{"NPC Spine [Spn0]", "NPC Head"},
		VertexCount: 3,
		Triangles:   []model.Triangle{{0, 1, 2}},
		Partitions: []*model.PartitionBlock{
			{
				Bones:         []int{1, 0},
				VertexMap:     []int{0, 1, 2},
				BoneIndices:   []model.WeightSlots{{0, 1, 0, 0}, {1, 0, 0, 0}, {0, 0, 0, 0}},
				VertexWeights: []model.WeightValues{{0.5, 0.5, 0, 0}, {0.25, 0.75, 0, 0}, {1, 0, 0, 0}},
			},
		},
	}

	repository := NewNifSkinRepository()
	path := filepath.Join(t.TempDir(), "body.musk")
	if err := repository.Save(path, skin, moutput.SaveOptions{}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := repository.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, skin) {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestLoadRejectsWrongMagic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.musk")
	if err := os.WriteFile(path, []byte("XXXX\x01\x00\x00\x00"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := NewNifSkinRepository().Load(path); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.musk")
	if err := os.WriteFile(path, []byte("MUSK\x01"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if _, err := NewNifSkinRepository().Load(path); err == nil {
		t.Fatalf("expected error")
	}
}
