// 指示: miu200521358
package minteractor

import (
	"math"

	"github.com/miu200521358/mu_skin2nif/pkg/domain/mmath"
	"github.com/miu200521358/mu_skin2nif/pkg/domain/model"
	"github.com/miu200521358/mu_skin2nif/pkg/shared/base/merr"
)

// CapsuleSpace はカプセル編集の基準空間を表す。
type CapsuleSpace int

const (
	// CapsuleSpaceWorld はワールド空間基準を表す。
	CapsuleSpaceWorld CapsuleSpace = iota
	// CapsuleSpaceObject はカプセルメッシュのオブジェクト空間基準を表す。
	CapsuleSpaceObject
	// CapsuleSpaceCapsule は頂点から復元したカプセル固有フレーム基準を表す。
	CapsuleSpaceCapsule
)

// TransformCapsuleRequest はカプセル変換要求を表す。
type TransformCapsuleRequest struct {
	Scene  *model.Scene
	MeshID model.NodeID
	// Translate は移動量を表す。
	Translate mmath.Vec3
	// RotateDegrees は回転量(度、XYZ順)を表す。
	RotateDegrees mmath.Vec3
	// Scale は倍率を表す。
	Scale mmath.Vec3
	// Space は変換の基準空間を表す。
	Space CapsuleSpace
}

// TransformCapsule はカプセルメッシュの頂点へ剛体変換を適用する。
// 変換は指定空間で組み立て、頂点単位でワールドへ適用し直す。
func (uc *Skin2NifUsecase) TransformCapsule(request TransformCapsuleRequest) error {
	if request.Scene == nil {
		return merr.New(model.ErrorIDValidation, "変換対象シーンが未設定です")
	}
	return runInTransaction(request.Scene, func() error {
		meshNode, worldPoints, err := capsuleWorldPoints(request.Scene, request.MeshID)
		if err != nil {
			return err
		}
		basis, err := capsuleSpaceBasis(request.Scene, meshNode, worldPoints, request.Space)
		if err != nil {
			return err
		}
		scale := request.Scale
		if scale.NearEquals(mmath.ZERO_VEC3, 0) {
			// 未指定のゼロ値は等倍として扱う。
			scale = mmath.ONE_VEC3
		}
		local := mmath.ComposeMat4(
			request.Translate,
			mmath.NewQuaternionFromDegrees(request.RotateDegrees.X, request.RotateDegrees.Y, request.RotateDegrees.Z),
			scale,
		)
		transform := basis.Mul(local).Mul(basis.Inverse())
		for index := range worldPoints {
			worldPoints[index] = transform.MulVec3(worldPoints[index])
		}
		return writeCapsuleWorldPoints(request.Scene, meshNode, worldPoints)
	})
}

// AimCapsule はカプセルの長軸をワールド座標の目標点へ向ける。
// カプセルフレーム基準のX軸(始点→終点)から目標方向への最短弧回転を適用する。
func (uc *Skin2NifUsecase) AimCapsule(scene *model.Scene, meshID model.NodeID, worldTarget mmath.Vec3) error {
	if scene == nil {
		return merr.New(model.ErrorIDValidation, "変換対象シーンが未設定です")
	}
	return runInTransaction(scene, func() error {
		meshNode, worldPoints, err := capsuleWorldPoints(scene, meshID)
		if err != nil {
			return err
		}
		basis := model.NewCapsuleFrame(worldPoints).Matrix()
		localTarget := basis.Inverse().MulVec3(worldTarget)
		if localTarget.Length() <= 1e-10 {
			// 目標がフレーム原点と一致する場合は向きを変えない。
			return nil
		}
		rotation := mmath.NewQuaternionRotate(mmath.UNIT_X_VEC3, localTarget.Normalized())
		if rotation.IsIdent(1e-10) {
			// 既に目標方向を向いている場合は頂点を書き換えない。
			return nil
		}
		transform := basis.Mul(mmath.ComposeMat4(mmath.ZERO_VEC3, rotation, mmath.ONE_VEC3)).Mul(basis.Inverse())
		for index := range worldPoints {
			worldPoints[index] = transform.MulVec3(worldPoints[index])
		}
		return writeCapsuleWorldPoints(scene, meshNode, worldPoints)
	})
}

// UpdateCapsuleRequest はカプセル寸法更新要求を表す。RadiusとHeightは片方のみ
// 指定でき、未指定側は全長を保つように導出する。
type UpdateCapsuleRequest struct {
	Scene  *model.Scene
	MeshID model.NodeID
	Radius *float64
	Height *float64
}

// UpdateCapsule はカプセルの半径・高さを更新し、頂点列を現在のフレーム上で
// 再生成する。高さのみ指定時は半径を、半径のみ指定時は高さを補正して全長を保つ。
func (uc *Skin2NifUsecase) UpdateCapsule(request UpdateCapsuleRequest) error {
	if request.Scene == nil {
		return merr.New(model.ErrorIDValidation, "変換対象シーンが未設定です")
	}
	if request.Radius == nil && request.Height == nil {
		return merr.New(model.ErrorIDValidation, "半径か高さのいずれかを指定してください")
	}
	return runInTransaction(request.Scene, func() error {
		meshNode, worldPoints, err := capsuleWorldPoints(request.Scene, request.MeshID)
		if err != nil {
			return err
		}
		frame := model.NewCapsuleFrame(worldPoints)
		oldHeight := model.CapsuleHeightFromPoints(worldPoints)
		oldRadius := model.CapsuleRadiusFromPoints(worldPoints)

		newHeight := oldHeight
		newRadius := oldRadius
		switch {
		case request.Radius != nil && request.Height != nil:
			newRadius = *request.Radius
			newHeight = *request.Height
		case request.Height != nil:
			newHeight = *request.Height
			newRadius = oldRadius - (newHeight-oldHeight)/2
		default:
			newRadius = *request.Radius
			newHeight = math.Max(0, oldHeight-(newRadius-oldRadius)*2)
		}
		if newRadius <= 0 {
			return merr.Newf(model.ErrorIDValidation, "カプセル半径が正ではありません: %f", newRadius)
		}

		basis := frame.Matrix()
		points := model.CapsulePoints(newHeight, newRadius)
		for index := range points {
			points[index] = basis.MulVec3(points[index])
		}
		return writeCapsuleWorldPoints(request.Scene, meshNode, points)
	})
}

// CapsuleHeight はカプセルの円筒部高さをワールド空間で返す。
func (uc *Skin2NifUsecase) CapsuleHeight(scene *model.Scene, meshID model.NodeID) (float64, error) {
	_, worldPoints, err := capsuleWorldPoints(scene, meshID)
	if err != nil {
		return 0, err
	}
	return model.CapsuleHeightFromPoints(worldPoints), nil
}

// CapsuleRadius はカプセルの半径をワールド空間で返す。
func (uc *Skin2NifUsecase) CapsuleRadius(scene *model.Scene, meshID model.NodeID) (float64, error) {
	_, worldPoints, err := capsuleWorldPoints(scene, meshID)
	if err != nil {
		return 0, err
	}
	return model.CapsuleRadiusFromPoints(worldPoints), nil
}

// capsuleWorldPoints はカプセルメッシュの頂点列をワールド空間で返す。
func capsuleWorldPoints(scene *model.Scene, meshID model.NodeID) (*model.Node, []mmath.Vec3, error) {
	meshNode := scene.Node(meshID)
	if meshNode == nil || meshNode.Mesh == nil {
		return nil, nil, merr.Newf(model.ErrorIDValidation, "カプセルメッシュが見つかりません: %d", meshID)
	}
	if len(meshNode.Mesh.Positions) != model.CapsuleVertexCount {
		return nil, nil, merr.Newf(model.ErrorIDValidation,
			"カプセルメッシュの頂点数が一致しません: %d", len(meshNode.Mesh.Positions))
	}
	world := scene.WorldMatrix(meshID)
	points := make([]mmath.Vec3, len(meshNode.Mesh.Positions))
	for index, position := range meshNode.Mesh.Positions {
		points[index] = world.MulVec3(position.MulScalar(meshNode.GeometryScale))
	}
	return meshNode, points, nil
}

// writeCapsuleWorldPoints はワールド空間の頂点列をオブジェクト空間へ戻して書き込む。
func writeCapsuleWorldPoints(scene *model.Scene, meshNode *model.Node, worldPoints []mmath.Vec3) error {
	if meshNode.GeometryScale == 0 {
		return merr.New(model.ErrorIDValidation, "カプセルメッシュの形状スケールが0です")
	}
	inverse := scene.WorldMatrix(meshNode.ID).Inverse()
	for index, point := range worldPoints {
		meshNode.Mesh.Positions[index] = inverse.MulVec3(point).MulScalar(1.0 / meshNode.GeometryScale)
	}
	return nil
}

// capsuleSpaceBasis は指定空間の基底行列を返す。
func capsuleSpaceBasis(
	scene *model.Scene,
	meshNode *model.Node,
	worldPoints []mmath.Vec3,
	space CapsuleSpace,
) (mmath.Mat4, error) {
	switch space {
	case CapsuleSpaceWorld:
		return mmath.NewMat4(), nil
	case CapsuleSpaceObject:
		return scene.WorldMatrix(meshNode.ID), nil
	case CapsuleSpaceCapsule:
		return model.NewCapsuleFrame(worldPoints).Matrix(), nil
	default:
		return mmath.NewMat4(), merr.Newf(model.ErrorIDValidation, "未知の基準空間です: %d", int(space))
	}
}
