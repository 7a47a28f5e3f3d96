// 指示: miu200521358
// Package moutput はユースケース境界の入出力契約を提供する。
package moutput

import "github.com/miu200521358/mu_skin2nif/pkg/domain/model"

// SaveOptions は保存時のオプションを表す。
type SaveOptions struct{}

// ISceneReader はソースシーンの読み込み契約を表す。
type ISceneReader interface {
	// CanLoad は読み込み可否を判定する。
	CanLoad(path string) bool
	// Load はシーンを読み込む。
	Load(path string) (*model.Scene, error)
}

// ISkinReader は変換先スキンの読み込み契約を表す。
type ISkinReader interface {
	// CanLoad は読み込み可否を判定する。
	CanLoad(path string) bool
	// Load はスキンを読み込む。
	Load(path string) (*model.NifSkin, error)
}

// ISkinWriter は変換先スキンの書き込み契約を表す。
type ISkinWriter interface {
	// Save はスキンを保存する。
	Save(path string, skin *model.NifSkin, opts SaveOptions) error
}
