// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_skin2nif/pkg/domain/model"
	"github.com/miu200521358/mu_skin2nif/pkg/shared/base/merr"
)

// minScaleFactor はリスケール倍率の下限を表す。これ未満は縮退扱いで拒否する。
const minScaleFactor = 1e-3

// RescaleRequest はリグ一括リスケール要求を表す。
type RescaleRequest struct {
	Scene  *model.Scene
	MeshID model.NodeID
	// JointIDs はスケール対象ジョイントIDリストを表す。
	JointIDs []model.NodeID
	// ScaleFactor は一様倍率を表す。
	ScaleFactor float64
	// BakeGeometry がtrueの場合、形状属性ではなく頂点へ倍率を焼き込み再バインドする。
	BakeGeometry bool
}

// Rescale はメッシュとジョイント群へ一様倍率を適用する。
// 倍率が不正な場合はシーンへ一切手を付けずに失敗する。
func (uc *Skin2NifUsecase) Rescale(request RescaleRequest) error {
	if request.Scene == nil {
		return merr.New(model.ErrorIDValidation, "リスケール対象シーンが未設定です")
	}
	if request.ScaleFactor <= 0 || request.ScaleFactor < minScaleFactor {
		return merr.Newf(model.ErrorIDScaleTooSmall,
			"リスケール倍率が小さすぎます: %f", request.ScaleFactor)
	}
	meshNode := request.Scene.Node(request.MeshID)
	if meshNode == nil || meshNode.Mesh == nil {
		return merr.Newf(model.ErrorIDValidation, "メッシュノードが見つかりません: %d", request.MeshID)
	}
	return runInTransaction(request.Scene, func() error {
		return rescaleScene(request)
	})
}

// rescaleScene はリスケール本体を実行する。トランザクション境界の内側で呼ぶ。
func rescaleScene(request RescaleRequest) error {
	scene := request.Scene
	meshNode := scene.Node(request.MeshID)

	if request.BakeGeometry {
		return bakeMeshScale(scene, meshNode, request.JointIDs, request.ScaleFactor)
	}

	meshNode.GeometryScale = request.ScaleFactor
	for _, jointID := range request.JointIDs {
		joint := scene.Node(jointID)
		if joint == nil {
			return merr.Newf(model.ErrorIDValidation, "ジョイントが見つかりません: %d", jointID)
		}
		rescaleJoint(joint, request.ScaleFactor)
	}
	// ジョイント移動後もバインド姿勢が一致するよう逆バインド行列を取り直す。
	if meshNode.Mesh.Skin != nil {
		return refreshBindMatrices(scene, meshNode.Mesh.Skin)
	}
	return nil
}

// refreshBindMatrices はバインド中の各インフルエンスについて、現在のジョイント
// ワールド行列の逆行列で逆バインド行列を置き換える。
func refreshBindMatrices(scene *model.Scene, binding *model.SkinBinding) error {
	for _, name := range binding.Influences {
		joint := scene.NodeByName(name)
		if joint == nil {
			return merr.Newf(model.ErrorIDMissingInfluenceBone,
				"再バインド対象のジョイントが見つかりません: %s", name)
		}
		binding.BindPreMatrices[name] = scene.WorldMatrix(joint.ID).Inverse()
	}
	return nil
}

// rescaleJoint はジョイント1体へ倍率を適用する。移動チャンネルにドライバ接続が
// ある場合、書き込みが拒否されないよう一旦外してから元の接続へ戻す。
func rescaleJoint(joint *model.Node, factor float64) {
	detached := map[model.Channel]model.NodeID{}
	for _, channel := range model.TranslateChannels {
		if driver, ok := joint.Drivers[channel]; ok {
			detached[channel] = driver
			delete(joint.Drivers, channel)
		}
	}

	joint.Translation = joint.Translation.MulScalar(factor)
	joint.Radius *= factor

	for channel, driver := range detached {
		joint.Drivers[channel] = driver
	}
}

// bakeMeshScale は倍率を頂点位置へ焼き込む。デフォーム履歴を外した状態で
// 形状を固めた後、保存済みのウェイトで再バインドし、スケール適用後のジョイント
// ワールド行列から逆バインド行列を取り直す。
func bakeMeshScale(scene *model.Scene, meshNode *model.Node, jointIDs []model.NodeID, factor float64) error {
	mesh := meshNode.Mesh
	if mesh.Skin == nil {
		return merr.New(model.ErrorIDValidation, "メッシュにスキンバインドがありません")
	}

	savedInfluences := append([]string{}, mesh.Skin.Influences...)
	savedWeights := mesh.Skin.Weights

	// デフォーム履歴を外してから形状へスケールを固める。
	mesh.Skin = nil
	for index := range mesh.Positions {
		mesh.Positions[index] = mesh.Positions[index].MulScalar(factor)
	}
	meshNode.GeometryScale = 1.0

	for _, jointID := range jointIDs {
		joint := scene.Node(jointID)
		if joint == nil {
			return merr.Newf(model.ErrorIDValidation, "ジョイントが見つかりません: %d", jointID)
		}
		rescaleJoint(joint, factor)
	}

	// 再バインド。逆バインド行列はスケール適用後の姿勢から取り直す。
	binding := model.NewSkinBinding(savedInfluences)
	binding.Weights = savedWeights
	if err := refreshBindMatrices(scene, binding); err != nil {
		return err
	}
	mesh.Skin = binding
	return nil
}
