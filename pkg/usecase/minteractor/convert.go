// 指示: miu200521358
package minteractor

import (
	"github.com/miu200521358/mu_skin2nif/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_skin2nif/pkg/domain/model"
	"github.com/miu200521358/mu_skin2nif/pkg/shared/base/merr"
	"github.com/miu200521358/mu_skin2nif/pkg/usecase/port/moutput"
)

// ExportProgressEvent はエクスポート進捗イベントを表す。
type ExportProgressEvent struct {
	// Step は完了済み工程数を表す。
	Step int
	// Total は全工程数を表す。
	Total int
	// Message は工程の表示メッセージを表す。
	Message string
}

// IExportProgressReporter はエクスポート進捗の通知先を表す。
type IExportProgressReporter interface {
	ReportExportProgress(event ExportProgressEvent)
}

// ExportSkinRequest はスキンエクスポート要求を表す。
type ExportSkinRequest struct {
	// ScenePath はソースシーンファイルパスを表す。
	ScenePath string
	// SkinPath は変換先スキン構造ファイルパスを表す。
	SkinPath string
	// OutputPath は書き出し先ファイルパスを表す。
	OutputPath string
	// MeshName は転送元メッシュノード名を表す。空の場合はスキン付きメッシュを探索する。
	MeshName string
	// Progress は進捗通知先を表す。nilの場合は通知しない。
	Progress IExportProgressReporter
}

// ExportSkinResult はスキンエクスポート結果を表す。
type ExportSkinResult struct {
	Skin  *model.NifSkin
	Remap *RemapWeightsResult
}

// exportStepCount はエクスポートの全工程数を表す。
const exportStepCount = 5

// ExportSkin はシーンのスキンウェイトを変換先スキン構造へ転送して書き出す。
func (uc *Skin2NifUsecase) ExportSkin(request ExportSkinRequest) (*ExportSkinResult, error) {
	if uc.sceneReader == nil || uc.skinReader == nil || uc.skinWriter == nil {
		return nil, merr.New(model.ErrorIDValidation, "入出力リポジトリが未設定です")
	}

	reportExportProgress(request.Progress, 0, messages.ExportLoadScene)
	if !uc.sceneReader.CanLoad(request.ScenePath) {
		return nil, merr.Newf(model.ErrorIDValidation, "シーンファイルを読み込めません: %s", request.ScenePath)
	}
	scene, err := uc.sceneReader.Load(request.ScenePath)
	if err != nil {
		return nil, err
	}

	reportExportProgress(request.Progress, 1, messages.ExportLoadSkin)
	if !uc.skinReader.CanLoad(request.SkinPath) {
		return nil, merr.Newf(model.ErrorIDValidation, "スキン構造ファイルを読み込めません: %s", request.SkinPath)
	}
	skin, err := uc.skinReader.Load(request.SkinPath)
	if err != nil {
		return nil, err
	}

	mesh, err := findSkinnedMesh(scene, request.MeshName)
	if err != nil {
		return nil, err
	}
	if len(mesh.Faces) != len(skin.Triangles) {
		return nil, merr.Newf(model.ErrorIDValidation,
			"面数が一致しません: ソース%d 変換先%d", len(mesh.Faces), len(skin.Triangles))
	}

	reportExportProgress(request.Progress, 2, messages.ExportCorrespondence)
	correspondence := BuildVertexCorrespondence(mesh.Faces, skin.Triangles)

	reportExportProgress(request.Progress, 3, messages.ExportRemap)
	remapResult, err := uc.RemapWeights(RemapWeightsRequest{
		SourceWeights:  mesh.Skin.Weights,
		InfluenceOrder: mesh.Skin.Influences,
		Correspondence: correspondence,
		Skin:           skin,
	})
	if err != nil {
		return nil, err
	}

	reportExportProgress(request.Progress, 4, messages.ExportSave)
	if err := uc.skinWriter.Save(request.OutputPath, skin, moutput.SaveOptions{}); err != nil {
		return nil, err
	}

	reportExportProgress(request.Progress, exportStepCount, messages.ExportFinish)
	return &ExportSkinResult{Skin: skin, Remap: remapResult}, nil
}

// findSkinnedMesh は転送元メッシュを探す。名前指定が無い場合は最初のスキン付き
// メッシュを返す。
func findSkinnedMesh(scene *model.Scene, meshName string) (*model.Mesh, error) {
	if meshName != "" {
		node := scene.NodeByName(meshName)
		if node == nil || node.Mesh == nil {
			return nil, merr.Newf(model.ErrorIDValidation, "メッシュノードが見つかりません: %s", meshName)
		}
		if node.Mesh.Skin == nil {
			return nil, merr.Newf(model.ErrorIDValidation, "メッシュにスキンバインドがありません: %s", meshName)
		}
		return node.Mesh, nil
	}
	for _, node := range scene.Nodes {
		if node.Mesh != nil && node.Mesh.Skin != nil {
			return node.Mesh, nil
		}
	}
	return nil, merr.New(model.ErrorIDValidation, "スキン付きメッシュが見つかりません")
}

// reportExportProgress は進捗イベントを通知する。
func reportExportProgress(reporter IExportProgressReporter, step int, message string) {
	if reporter == nil {
		return
	}
	reporter.ReportExportProgress(ExportProgressEvent{
		Step:    step,
		Total:   exportStepCount,
		Message: message,
	})
}
