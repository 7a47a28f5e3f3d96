// 指示: miu200521358
// Package io_config は物理生成設定の読み込みを提供する。
package io_config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_skin2nif/pkg/usecase/minteractor"
)

// PhysicsConfig は物理プロキシ生成の設定を表す。
type PhysicsConfig struct {
	// Material は生成カプセルへ割り当てる物理マテリアル定義を表す。
	Material struct {
		Name           string `yaml:"name"`
		CollisionLayer string `yaml:"collision_layer"`
	} `yaml:"material"`
	// Sizing はカプセル自動採寸の式定義を表す。
	Sizing struct {
		SingleChildRadius string `yaml:"single_child_radius"`
		SingleChildHeight string `yaml:"single_child_height"`
		MultiChildHeight  string `yaml:"multi_child_height"`
	} `yaml:"sizing"`
}

// DefaultPhysicsConfig は既定設定を返す。
func DefaultPhysicsConfig() *PhysicsConfig {
	config := &PhysicsConfig{}
	config.Material.Name = minteractor.SkinMaterialName
	config.Material.CollisionLayer = minteractor.BipedCollisionLayer
	rules := minteractor.DefaultSizingRules()
	config.Sizing.SingleChildRadius = rules.SingleChildRadius
	config.Sizing.SingleChildHeight = rules.SingleChildHeight
	config.Sizing.MultiChildHeight = rules.MultiChildHeight
	return config
}

// LoadPhysicsConfig はYAMLファイルから設定を読み込む。未指定項目は既定値で補う。
func LoadPhysicsConfig(path string) (*PhysicsConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイルを読み込めません: %w", err)
	}
	config := DefaultPhysicsConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("設定ファイルの解析に失敗しました(%s): %w", path, err)
	}
	return config, nil
}

// SizingRules は設定から採寸ルールを組み立てる。
func (c *PhysicsConfig) SizingRules() *minteractor.SizingRules {
	return &minteractor.SizingRules{
		SingleChildRadius: c.Sizing.SingleChildRadius,
		SingleChildHeight: c.Sizing.SingleChildHeight,
		MultiChildHeight:  c.Sizing.MultiChildHeight,
	}
}
