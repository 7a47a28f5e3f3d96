// 指示: miu200521358
package minteractor

import (
	"sort"
	"strings"
	"sync"

	govaluate "gopkg.in/Knetic/govaluate.v3"

	"github.com/miu200521358/mu_skin2nif/pkg/domain/model"
	"github.com/miu200521358/mu_skin2nif/pkg/shared/base/merr"
)

const (
	// SkinMaterialName は肌用物理マテリアル名を表す。
	SkinMaterialName = "SKY_HAV_MAT_SKIN"
	// BipedCollisionLayer は人体用コリジョンレイヤ名を表す。
	BipedCollisionLayer = "SKYL_BIPED"
	// RigidBodySuffix は剛体プロキシジョイント名の接尾辞を表す。
	RigidBodySuffix = "_rb"
	// RigidBodyCapsuleSuffix はカプセルメッシュ名の接尾辞を表す。
	RigidBodyCapsuleSuffix = "_rb_capsule"
	// minChildSpacing は自動採寸が成立する親子間距離の下限を表す。
	minChildSpacing = 0.01
)

// PhysicsMaterial は物理マテリアル定義を表す。
type PhysicsMaterial struct {
	Name           string
	CollisionLayer string
}

// MaterialRegistry はシーン単位の物理マテリアル登録簿を表す。
// 同名マテリアルは一度だけ生成し、以後の要求には既存項目を返す。
type MaterialRegistry struct {
	mu          sync.Mutex
	materials   map[string]*PhysicsMaterial
	assignments map[string]*PhysicsMaterial
}

// NewMaterialRegistry はマテリアル登録簿を生成する。
func NewMaterialRegistry() *MaterialRegistry {
	return &MaterialRegistry{
		materials:   map[string]*PhysicsMaterial{},
		assignments: map[string]*PhysicsMaterial{},
	}
}

// GetOrCreate は名前が一致するマテリアルを返す。未登録なら生成して登録する。
func (r *MaterialRegistry) GetOrCreate(name string, collisionLayer string) *PhysicsMaterial {
	r.mu.Lock()
	defer r.mu.Unlock()
	if material, ok := r.materials[name]; ok {
		return material
	}
	material := &PhysicsMaterial{Name: name, CollisionLayer: collisionLayer}
	r.materials[name] = material
	return material
}

// Assign はメッシュ名へマテリアルを割り当てる。
func (r *MaterialRegistry) Assign(meshName string, material *PhysicsMaterial) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments[meshName] = material
}

// MaterialFor はメッシュ名に割り当てられたマテリアルを返す。未割り当てはnilを返す。
func (r *MaterialRegistry) MaterialFor(meshName string) *PhysicsMaterial {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.assignments[meshName]
}

// MaterialNames は登録済みマテリアル名を名前順で返す。
func (r *MaterialRegistry) MaterialNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.materials))
	for name := range r.materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SizingRules はカプセル自動採寸の式定義を表す。式はgovaluate構文で記述し、
// 変数distance・radius・maxDistanceと関数maxを利用できる。
type SizingRules struct {
	// SingleChildRadius は子ジョイント1体時の半径式を表す。
	SingleChildRadius string
	// SingleChildHeight は子ジョイント1体時の高さ式を表す。
	SingleChildHeight string
	// MultiChildHeight は子ジョイント複数時の高さ式を表す。負値もそのまま採用する。
	MultiChildHeight string
}

// DefaultSizingRules は既定の採寸ルールを返す。
func DefaultSizingRules() *SizingRules {
	return &SizingRules{
		SingleChildRadius: "distance / 3",
		SingleChildHeight: "max(0, distance - (radius * 2))",
		MultiChildHeight:  "maxDistance / 2 - (radius * 2)",
	}
}

// sizingFunctions は採寸式から利用できる関数群を保持する。
var sizingFunctions = map[string]govaluate.ExpressionFunction{
	"max": func(args ...interface{}) (interface{}, error) {
		if len(args) == 0 {
			return nil, merr.New(model.ErrorIDValidation, "max関数に引数がありません")
		}
		best, ok := args[0].(float64)
		if !ok {
			return nil, merr.New(model.ErrorIDValidation, "max関数の引数が数値ではありません")
		}
		for _, arg := range args[1:] {
			value, ok := arg.(float64)
			if !ok {
				return nil, merr.New(model.ErrorIDValidation, "max関数の引数が数値ではありません")
			}
			if value > best {
				best = value
			}
		}
		return best, nil
	},
}

// evalSizingRule は採寸式を評価して数値を返す。
func evalSizingRule(expression string, params map[string]interface{}) (float64, error) {
	compiled, err := govaluate.NewEvaluableExpressionWithFunctions(expression, sizingFunctions)
	if err != nil {
		return 0, merr.Wrap(model.ErrorIDValidation, "採寸式の解析に失敗しました", err)
	}
	result, err := compiled.Evaluate(params)
	if err != nil {
		return 0, merr.Wrap(model.ErrorIDValidation, "採寸式の評価に失敗しました", err)
	}
	value, ok := result.(float64)
	if !ok {
		return 0, merr.Newf(model.ErrorIDValidation, "採寸式の結果が数値ではありません: %s", expression)
	}
	return value, nil
}

// AutoSizeCapsule はジョイントの子配置からカプセル寸法を採寸する。
// 子が無い場合や子が近すぎる場合はジョイント表示半径・高さ0の既定値を返す。
func (uc *Skin2NifUsecase) AutoSizeCapsule(scene *model.Scene, jointID model.NodeID) (float64, float64, error) {
	joint := scene.Node(jointID)
	if joint == nil {
		return 0, 0, merr.Newf(model.ErrorIDValidation, "ジョイントが見つかりません: %d", jointID)
	}
	origin := scene.WorldPosition(jointID)

	distances := make([]float64, 0)
	for _, childID := range scene.ChildJoints(jointID) {
		child := scene.Node(childID)
		if strings.HasSuffix(child.Name, RigidBodySuffix) {
			continue
		}
		distances = append(distances, origin.Distance(scene.WorldPosition(childID)))
	}

	switch len(distances) {
	case 0:
		return joint.Radius, 0, nil
	case 1:
		distance := distances[0]
		if distance <= minChildSpacing {
			return joint.Radius, 0, nil
		}
		radius, err := evalSizingRule(uc.sizingRules.SingleChildRadius,
			map[string]interface{}{"distance": distance})
		if err != nil {
			return 0, 0, err
		}
		height, err := evalSizingRule(uc.sizingRules.SingleChildHeight,
			map[string]interface{}{"distance": distance, "radius": radius})
		if err != nil {
			return 0, 0, err
		}
		return radius, height, nil
	default:
		sum := 0.0
		maxDistance := distances[0]
		for _, distance := range distances {
			sum += distance
			if distance > maxDistance {
				maxDistance = distance
			}
		}
		if maxDistance <= minChildSpacing {
			return joint.Radius, 0, nil
		}
		radius := sum / float64(len(distances))
		height, err := evalSizingRule(uc.sizingRules.MultiChildHeight,
			map[string]interface{}{"maxDistance": maxDistance, "radius": radius})
		if err != nil {
			return 0, 0, err
		}
		return radius, height, nil
	}
}

// AddRigidBodyResult は剛体生成結果を表す。
type AddRigidBodyResult struct {
	// RigidBodyID は生成したプロキシジョイントIDを表す。
	RigidBodyID model.NodeID
	// CapsuleMeshID は生成したカプセルメッシュノードIDを表す。
	CapsuleMeshID model.NodeID
	// Radius は採用したカプセル半径を表す。
	Radius float64
	// Height は採用したカプセル円筒部高さを表す。
	Height float64
}

// AddRigidBody はジョイント直下へ剛体プロキシとカプセルメッシュを生成する。
// 寸法は子ジョイント配置から自動採寸し、マテリアルは登録簿の共有項目を割り当てる。
func (uc *Skin2NifUsecase) AddRigidBody(scene *model.Scene, jointID model.NodeID) (*AddRigidBodyResult, error) {
	return uc.addRigidBodyWith(scene, jointID, func(joint *model.Node) (float64, float64, error) {
		return uc.AutoSizeCapsule(scene, jointID)
	})
}

// CreateRigidBody は寸法明示でジョイント直下へ剛体プロキシとカプセルメッシュを生成する。
func (uc *Skin2NifUsecase) CreateRigidBody(scene *model.Scene, jointID model.NodeID, radius float64, height float64) (*AddRigidBodyResult, error) {
	if radius <= 0 {
		return nil, merr.Newf(model.ErrorIDValidation, "カプセル半径が正ではありません: %f", radius)
	}
	return uc.addRigidBodyWith(scene, jointID, func(joint *model.Node) (float64, float64, error) {
		return radius, height, nil
	})
}

// addRigidBodyWith は採寸関数を差し替え可能にした剛体生成の共通経路を表す。
func (uc *Skin2NifUsecase) addRigidBodyWith(
	scene *model.Scene,
	jointID model.NodeID,
	size func(joint *model.Node) (float64, float64, error),
) (*AddRigidBodyResult, error) {
	if scene == nil {
		return nil, merr.New(model.ErrorIDValidation, "剛体生成対象シーンが未設定です")
	}
	joint := scene.Node(jointID)
	if joint == nil || joint.Kind != model.NodeKindJoint {
		return nil, merr.Newf(model.ErrorIDValidation, "剛体生成対象ジョイントが不正です: %d", jointID)
	}
	if RigidBodyForNode(scene, jointID) != nil {
		return nil, merr.Newf(model.ErrorIDValidation, "剛体が既に存在します: %s", joint.Name)
	}

	result := &AddRigidBodyResult{}
	if err := runInTransaction(scene, func() error {
		radius, height, err := size(joint)
		if err != nil {
			return err
		}
		rigidBodyID, capsuleID := uc.createRigidBodyNodes(scene, joint, radius, height)
		result.RigidBodyID = rigidBodyID
		result.CapsuleMeshID = capsuleID
		result.Radius = radius
		result.Height = height
		return nil
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// RigidBodyForNode はノード直下の剛体プロキシジョイントを返す。無ければnilを返す。
func RigidBodyForNode(scene *model.Scene, nodeID model.NodeID) *model.Node {
	node := scene.Node(nodeID)
	if node == nil {
		return nil
	}
	wantName := node.Name + RigidBodySuffix
	for _, childID := range node.Children {
		child := scene.Node(childID)
		if child != nil && child.Kind == model.NodeKindJoint && child.Name == wantName {
			return child
		}
	}
	return nil
}

// CapsuleForRigidBody は剛体プロキシ直下のカプセルメッシュノードを返す。無ければnilを返す。
func CapsuleForRigidBody(scene *model.Scene, rigidBodyID model.NodeID) *model.Node {
	rigidBody := scene.Node(rigidBodyID)
	if rigidBody == nil {
		return nil
	}
	for _, childID := range rigidBody.Children {
		child := scene.Node(childID)
		if child != nil && child.Kind == model.NodeKindMesh && strings.HasSuffix(child.Name, RigidBodyCapsuleSuffix) {
			return child
		}
	}
	return nil
}

// createRigidBodyNodes はプロキシジョイントとカプセルメッシュをシーンへ登録する。
// プロキシはソースジョイント直下へ置き、表示半径はソースの半分にする。
func (uc *Skin2NifUsecase) createRigidBodyNodes(
	scene *model.Scene,
	joint *model.Node,
	radius float64,
	height float64,
) (model.NodeID, model.NodeID) {
	rigidBody := model.NewNode(joint.Name+RigidBodySuffix, model.NodeKindJoint)
	rigidBody.Parent = joint.ID
	rigidBody.Radius = joint.Radius / 2
	rigidBodyID := scene.AddNode(rigidBody)

	capsule := model.NewNode(joint.Name+RigidBodyCapsuleSuffix, model.NodeKindMesh)
	capsule.Parent = rigidBodyID
	capsule.Mesh = &model.Mesh{
		Positions: model.CapsulePoints(height, radius),
		Faces:     model.CapsuleFaces(),
	}
	capsule.LockChannels(model.TransformChannels)
	capsuleID := scene.AddNode(capsule)

	material := uc.materials.GetOrCreate(SkinMaterialName, BipedCollisionLayer)
	uc.materials.Assign(capsule.Name, material)
	return rigidBodyID, capsuleID
}
