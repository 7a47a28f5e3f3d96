// 指示: miu200521358
// Package minteractor はスキン転送と物理プロキシ生成のユースケースを提供する。
//
// 全操作は単一スレッド・同期実行を前提とし、同一シーンへの呼び出しの直列化は
// 呼び出し側の責務とする。
package minteractor

import "github.com/miu200521358/mu_skin2nif/pkg/usecase/port/moutput"

// Skin2NifUsecaseDeps はスキン転送ユースケースの依存を表す。
type Skin2NifUsecaseDeps struct {
	SceneReader moutput.ISceneReader
	SkinReader  moutput.ISkinReader
	SkinWriter  moutput.ISkinWriter
	Materials   *MaterialRegistry
	SizingRules *SizingRules
}

// Skin2NifUsecase はスキン転送と物理プロキシ生成の処理をまとめたユースケースを表す。
type Skin2NifUsecase struct {
	sceneReader moutput.ISceneReader
	skinReader  moutput.ISkinReader
	skinWriter  moutput.ISkinWriter
	materials   *MaterialRegistry
	sizingRules *SizingRules
}

// NewSkin2NifUsecase はスキン転送ユースケースを生成する。
func NewSkin2NifUsecase(deps Skin2NifUsecaseDeps) *Skin2NifUsecase {
	materials := deps.Materials
	if materials == nil {
		materials = NewMaterialRegistry()
	}
	sizingRules := deps.SizingRules
	if sizingRules == nil {
		sizingRules = DefaultSizingRules()
	}
	return &Skin2NifUsecase{
		sceneReader: deps.SceneReader,
		skinReader:  deps.SkinReader,
		skinWriter:  deps.SkinWriter,
		materials:   materials,
		sizingRules: sizingRules,
	}
}
