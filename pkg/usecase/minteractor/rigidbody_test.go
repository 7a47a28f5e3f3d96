// 指示: miu200521358
package minteractor

import (
	"math"
	"testing"

	"github.com/miu200521358/mu_skin2nif/pkg/domain/mmath"
	"github.com/miu200521358/mu_skin2nif/pkg/domain/model"
	"github.com/miu200521358/mu_skin2nif/pkg/shared/base/merr"
)

func TestMaterialRegistryCreatesOnce(t *testing.T) {
	registry := NewMaterialRegistry()
	first := registry.GetOrCreate(SkinMaterialName, BipedCollisionLayer)
	second := registry.GetOrCreate(SkinMaterialName, BipedCollisionLayer)
	if first != second {
		t.Fatalf("same-name material must be shared")
	}
	if first.Name != SkinMaterialName || first.CollisionLayer != BipedCollisionLayer {
		t.Fatalf("material fields mismatch: %+v", first)
	}
	names := registry.MaterialNames()
	if len(names) != 1 || names[0] != SkinMaterialName {
		t.Fatalf("registry names mismatch: %v", names)
	}
}

func newJointScene(childOffsets ...mmath.Vec3) (*model.Scene, model.NodeID) {
	scene := model.NewScene()
	joint := model.NewNode("Spine", model.NodeKindJoint)
	joint.Radius = 1.2
	jointID := scene.AddNode(joint)
	for i, offset := range childOffsets {
		child := model.NewNode("Child"+string(rune('A'+i)), model.NodeKindJoint)
		child.Parent = jointID
		child.Translation = offset
		scene.AddNode(child)
	}
	return scene, jointID
}

func TestAutoSizeCapsuleNoChildren(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, jointID := newJointScene()

	radius, height, err := usecase.AutoSizeCapsule(scene, jointID)
	if err != nil {
		t.Fatalf("autosize failed: %v", err)
	}
	if math.Abs(radius-1.2) > 1e-12 || height != 0 {
		t.Fatalf("default sizing mismatch: r=%f h=%f", radius, height)
	}
}

func TestAutoSizeCapsuleSingleChild(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, jointID := newJointScene(mmath.NewVec3(9, 0, 0))

	radius, height, err := usecase.AutoSizeCapsule(scene, jointID)
	if err != nil {
		t.Fatalf("autosize failed: %v", err)
	}
	if math.Abs(radius-3.0) > 1e-10 {
		t.Fatalf("radius mismatch: %f", radius)
	}
	// h = max(0, 9 - 3*2) = 3
	if math.Abs(height-3.0) > 1e-10 {
		t.Fatalf("height mismatch: %f", height)
	}
}

func TestAutoSizeCapsuleSingleChildTooClose(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, jointID := newJointScene(mmath.NewVec3(0.005, 0, 0))

	radius, height, err := usecase.AutoSizeCapsule(scene, jointID)
	if err != nil {
		t.Fatalf("autosize failed: %v", err)
	}
	if math.Abs(radius-1.2) > 1e-12 || height != 0 {
		t.Fatalf("near-origin child must fall back to defaults: r=%f h=%f", radius, height)
	}
}

func TestAutoSizeCapsuleMultipleChildren(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, jointID := newJointScene(mmath.NewVec3(4, 0, 0), mmath.NewVec3(0, 8, 0))

	radius, height, err := usecase.AutoSizeCapsule(scene, jointID)
	if err != nil {
		t.Fatalf("autosize failed: %v", err)
	}
	if math.Abs(radius-6.0) > 1e-10 {
		t.Fatalf("mean radius mismatch: %f", radius)
	}
	// h = 8/2 - 6*2 = -8。負値もそのまま採用する。
	if math.Abs(height-(-8.0)) > 1e-10 {
		t.Fatalf("height mismatch: %f", height)
	}
}

func TestAutoSizeCapsuleMultipleChildrenTooClose(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, jointID := newJointScene(mmath.NewVec3(0.005, 0, 0), mmath.NewVec3(0, 0.003, 0))

	radius, height, err := usecase.AutoSizeCapsule(scene, jointID)
	if err != nil {
		t.Fatalf("autosize failed: %v", err)
	}
	if math.Abs(radius-1.2) > 1e-12 || height != 0 {
		t.Fatalf("near-origin children must fall back to defaults: r=%f h=%f", radius, height)
	}
}

func TestAddRigidBodyCreatesProxyAndCapsule(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, jointID := newJointScene(mmath.NewVec3(9, 0, 0))

	result, err := usecase.AddRigidBody(scene, jointID)
	if err != nil {
		t.Fatalf("add rigid body failed: %v", err)
	}

	rigidBody := scene.Node(result.RigidBodyID)
	if rigidBody == nil || rigidBody.Name != "Spine_rb" || rigidBody.Kind != model.NodeKindJoint {
		t.Fatalf("rigid body node mismatch: %+v", rigidBody)
	}
	if rigidBody.Parent != jointID {
		t.Fatalf("rigid body must parent under source joint")
	}
	if math.Abs(rigidBody.Radius-0.6) > 1e-12 {
		t.Fatalf("proxy radius must be half of source: %f", rigidBody.Radius)
	}
	// 直下へ等値トランスフォームで置くため、ワールド姿勢はソースと一致する。
	if !scene.WorldPosition(result.RigidBodyID).NearEquals(scene.WorldPosition(jointID), 1e-12) {
		t.Fatalf("proxy world position mismatch")
	}

	capsule := scene.Node(result.CapsuleMeshID)
	if capsule == nil || capsule.Name != "Spine_rb_capsule" || capsule.Mesh == nil {
		t.Fatalf("capsule node mismatch: %+v", capsule)
	}
	if capsule.Parent != result.RigidBodyID {
		t.Fatalf("capsule must parent under rigid body joint")
	}
	if len(capsule.Mesh.Positions) != model.CapsuleVertexCount {
		t.Fatalf("capsule vertex count mismatch: %d", len(capsule.Mesh.Positions))
	}
	if len(capsule.Mesh.Faces) != model.CapsuleTriangleCount {
		t.Fatalf("capsule face count mismatch: %d", len(capsule.Mesh.Faces))
	}
	for _, channel := range model.TransformChannels {
		if !capsule.Locked[channel] {
			t.Fatalf("capsule channel %s must be locked", channel)
		}
	}
	if math.Abs(result.Radius-3.0) > 1e-10 || math.Abs(result.Height-3.0) > 1e-10 {
		t.Fatalf("sizing mismatch: r=%f h=%f", result.Radius, result.Height)
	}

	material := usecase.materials.MaterialFor(capsule.Name)
	if material == nil || material.Name != SkinMaterialName {
		t.Fatalf("capsule material mismatch: %+v", material)
	}
}

func TestAddRigidBodyRejectsDuplicate(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, jointID := newJointScene(mmath.NewVec3(9, 0, 0))

	if _, err := usecase.AddRigidBody(scene, jointID); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	_, err := usecase.AddRigidBody(scene, jointID)
	if !merr.HasID(err, model.ErrorIDValidation) {
		t.Fatalf("duplicate add must fail: %v", err)
	}
}

func TestAddRigidBodyExcludesProxyFromSizing(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, jointID := newJointScene(mmath.NewVec3(9, 0, 0))

	other := model.NewNode("Tail_rb", model.NodeKindJoint)
	other.Parent = jointID
	other.Translation = mmath.NewVec3(0, 100, 0)
	scene.AddNode(other)

	radius, _, err := usecase.AutoSizeCapsule(scene, jointID)
	if err != nil {
		t.Fatalf("autosize failed: %v", err)
	}
	// _rb接尾辞の子は採寸対象に含めない。
	if math.Abs(radius-3.0) > 1e-10 {
		t.Fatalf("proxy joint leaked into sizing: %f", radius)
	}
}

func TestAddRigidBodyRollsBackOnBadRule(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{
		SizingRules: &SizingRules{
			SingleChildRadius: "distance / 3",
			SingleChildHeight: "max(0, distance - (radius * 2)",
			MultiChildHeight:  "maxDistance / 2 - (radius * 2)",
		},
	})
	scene, jointID := newJointScene(mmath.NewVec3(9, 0, 0))
	nodeCount := len(scene.Nodes)

	_, err := usecase.AddRigidBody(scene, jointID)
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(scene.Nodes) != nodeCount {
		t.Fatalf("scene must roll back on failure: %d nodes", len(scene.Nodes))
	}
}

func TestCreateRigidBodyWithExplicitDimensions(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, jointID := newJointScene(mmath.NewVec3(9, 0, 0))

	result, err := usecase.CreateRigidBody(scene, jointID, 1.5, 0)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if math.Abs(result.Radius-1.5) > 1e-12 || result.Height != 0 {
		t.Fatalf("explicit dimensions not honored: r=%f h=%f", result.Radius, result.Height)
	}

	_, err = usecase.CreateRigidBody(scene, jointID, -1, 0)
	if !merr.HasID(err, model.ErrorIDValidation) {
		t.Fatalf("negative radius must fail: %v", err)
	}
}

func TestRigidBodyLookups(t *testing.T) {
	usecase := NewSkin2NifUsecase(Skin2NifUsecaseDeps{})
	scene, jointID := newJointScene(mmath.NewVec3(9, 0, 0))

	if RigidBodyForNode(scene, jointID) != nil {
		t.Fatalf("lookup must be nil before creation")
	}

	result, err := usecase.AddRigidBody(scene, jointID)
	if err != nil {
		t.Fatalf("add rigid body failed: %v", err)
	}
	rigidBody := RigidBodyForNode(scene, jointID)
	if rigidBody == nil || rigidBody.ID != result.RigidBodyID {
		t.Fatalf("rigid body lookup mismatch: %+v", rigidBody)
	}
	capsule := CapsuleForRigidBody(scene, result.RigidBodyID)
	if capsule == nil || capsule.ID != result.CapsuleMeshID {
		t.Fatalf("capsule lookup mismatch: %+v", capsule)
	}
	if CapsuleForRigidBody(scene, jointID) != nil {
		t.Fatalf("source joint must have no capsule child")
	}
}

func TestSizingRuleEvaluation(t *testing.T) {
	value, err := evalSizingRule("max(0, 5 - 8)", nil)
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if value != 0 {
		t.Fatalf("max clamp mismatch: %f", value)
	}
	value, err = evalSizingRule("distance / 4", map[string]interface{}{"distance": 10.0})
	if err != nil {
		t.Fatalf("eval failed: %v", err)
	}
	if math.Abs(value-2.5) > 1e-12 {
		t.Fatalf("variable eval mismatch: %f", value)
	}
}
