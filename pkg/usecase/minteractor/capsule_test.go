// 指示: miu200521358
package minteractor

import (
	"math"
	"testing"

	"github.com/miu200521358/mu_skin2nif/pkg/domain/mmath"
	"github.com/miu200521358/mu_skin2nif/pkg/domain/model"
	"github.com/miu200521358/mu_skin2nif/pkg/shared/base/merr"
)

// newCapsuleTestScene は高さ4半径1のカプセルメッシュを原点へ置いたシーンを作る。
func newCapsuleTestScene() (*model.Scene, model.NodeID) {
	scene := model.NewScene()
	capsule := model.NewNode("Spine_rb_capsule", model.NodeKindMesh)
	capsule.Mesh = &model.Mesh{
		Positions: model.CapsulePoints(4.0, 1.0),
		Faces:     model.CapsuleFaces(),
	}
	meshID := scene.AddNode(capsule)
	return scene, meshID
}

func TestCapsuleDimensionsReadBack(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, meshID := newCapsuleTestScene()

	height, err := usecase.CapsuleHeight(scene, meshID)
	if err != nil {
		t.Fatalf("height read failed: %v", err)
	}
	if math.Abs(height-4.0) > 1e-10 {
		t.Fatalf("height mismatch: %f", height)
	}
	radius, err := usecase.CapsuleRadius(scene, meshID)
	if err != nil {
		t.Fatalf("radius read failed: %v", err)
	}
	if math.Abs(radius-1.0) > 1e-10 {
		t.Fatalf("radius mismatch: %f", radius)
	}
}

func TestTransformCapsuleTranslateWorld(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, meshID := newCapsuleTestScene()
	start := scene.Node(meshID).Mesh.Positions[model.CapsuleStartID]

	if err := usecase.TransformCapsule(TransformCapsuleRequest{
		Scene:     scene,
		MeshID:    meshID,
		Translate: mmath.NewVec3(1, 2, 3),
		Scale:     mmath.ONE_VEC3,
		Space:     CapsuleSpaceWorld,
	}); err != nil {
		t.Fatalf("transform failed: %v", err)
	}

	moved := scene.Node(meshID).Mesh.Positions[model.CapsuleStartID]
	if !moved.NearEquals(start.Add(mmath.NewVec3(1, 2, 3)), 1e-10) {
		t.Fatalf("translation mismatch: %v", moved)
	}

	// 剛体変換では寸法が変わらない。
	height, _ := usecase.CapsuleHeight(scene, meshID)
	radius, _ := usecase.CapsuleRadius(scene, meshID)
	if math.Abs(height-4.0) > 1e-10 || math.Abs(radius-1.0) > 1e-10 {
		t.Fatalf("dimensions changed: h=%f r=%f", height, radius)
	}
}

func TestTransformCapsuleRotateInCapsuleSpace(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, meshID := newCapsuleTestScene()

	// カプセル空間の原点は始点側先端なので、回転しても始点は動かない。
	if err := usecase.TransformCapsule(TransformCapsuleRequest{
		Scene:         scene,
		MeshID:        meshID,
		RotateDegrees: mmath.NewVec3(0, 0, 45),
		Scale:         mmath.ONE_VEC3,
		Space:         CapsuleSpaceCapsule,
	}); err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	start := scene.Node(meshID).Mesh.Positions[model.CapsuleStartID]
	if !start.NearEquals(mmath.ZERO_VEC3, 1e-10) {
		t.Fatalf("start anchor moved: %v", start)
	}
	height, _ := usecase.CapsuleHeight(scene, meshID)
	if math.Abs(height-4.0) > 1e-10 {
		t.Fatalf("height changed by rotation: %f", height)
	}
}

func TestAimCapsuleAlongCurrentAxisIsNoop(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, meshID := newCapsuleTestScene()
	before := scene.Node(meshID).Mesh.Positions[model.CapsuleEndID]

	if err := usecase.AimCapsule(scene, meshID, mmath.NewVec3(100, 0, 0)); err != nil {
		t.Fatalf("aim failed: %v", err)
	}
	after := scene.Node(meshID).Mesh.Positions[model.CapsuleEndID]
	if !after.NearEquals(before, 1e-8) {
		t.Fatalf("aim along current axis must not move points: %v", after)
	}
}

func TestAimCapsulePointsAtTarget(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, meshID := newCapsuleTestScene()

	if err := usecase.AimCapsule(scene, meshID, mmath.NewVec3(0, 10, 0)); err != nil {
		t.Fatalf("aim failed: %v", err)
	}
	end := scene.Node(meshID).Mesh.Positions[model.CapsuleEndID]
	start := scene.Node(meshID).Mesh.Positions[model.CapsuleStartID]
	direction := end.Sub(start).Normalized()
	if !direction.NearEquals(mmath.UNIT_Y_VEC3, 1e-8) {
		t.Fatalf("long axis must point at target: %v", direction)
	}
	// 全長は保たれる。
	if math.Abs(end.Distance(start)-6.0) > 1e-8 {
		t.Fatalf("length changed: %f", end.Distance(start))
	}
}

func TestUpdateCapsuleHeightDerivesRadius(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, meshID := newCapsuleTestScene()

	newHeight := 2.0
	if err := usecase.UpdateCapsule(UpdateCapsuleRequest{
		Scene:  scene,
		MeshID: meshID,
		Height: &newHeight,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	height, _ := usecase.CapsuleHeight(scene, meshID)
	radius, _ := usecase.CapsuleRadius(scene, meshID)
	if math.Abs(height-2.0) > 1e-10 {
		t.Fatalf("height mismatch: %f", height)
	}
	// 反対側端を固定するため、全長維持の分だけ半径が広がる。
	if math.Abs(radius-2.0) > 1e-10 {
		t.Fatalf("derived radius mismatch: %f", radius)
	}
}

func TestUpdateCapsuleRadiusDerivesHeight(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, meshID := newCapsuleTestScene()

	newRadius := 2.5
	if err := usecase.UpdateCapsule(UpdateCapsuleRequest{
		Scene:  scene,
		MeshID: meshID,
		Radius: &newRadius,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	height, _ := usecase.CapsuleHeight(scene, meshID)
	radius, _ := usecase.CapsuleRadius(scene, meshID)
	if math.Abs(radius-2.5) > 1e-10 {
		t.Fatalf("radius mismatch: %f", radius)
	}
	// h = max(0, 4 - (2.5-1)*2) = 1
	if math.Abs(height-1.0) > 1e-10 {
		t.Fatalf("derived height mismatch: %f", height)
	}
}

func TestUpdateCapsuleHeightClampsAtZero(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, meshID := newCapsuleTestScene()

	newRadius := 10.0
	if err := usecase.UpdateCapsule(UpdateCapsuleRequest{
		Scene:  scene,
		MeshID: meshID,
		Radius: &newRadius,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	height, _ := usecase.CapsuleHeight(scene, meshID)
	if math.Abs(height) > 1e-9 {
		t.Fatalf("height must clamp at zero: %f", height)
	}
}

func TestUpdateCapsuleRequiresDimension(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, meshID := newCapsuleTestScene()

	err := usecase.UpdateCapsule(UpdateCapsuleRequest{Scene: scene, MeshID: meshID})
	if !merr.HasID(err, model.ErrorIDValidation) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCapsuleOperationsRejectWrongVertexCount(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene := model.NewScene()
	mesh := model.NewNode("Body", model.NodeKindMesh)
	mesh.Mesh = &model.Mesh{Positions: []mmath.Vec3{mmath.ZERO_VEC3}}
	meshID := scene.AddNode(mesh)

	_, err := usecase.CapsuleHeight(scene, meshID)
	if !merr.HasID(err, model.ErrorIDValidation) {
		t.Fatalf("unexpected error: %v", err)
	}
}
