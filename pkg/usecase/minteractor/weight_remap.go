// 指示: miu200521358
package minteractor

import (
	"sort"

	"github.com/miu200521358/mu_skin2nif/pkg/domain/model"
	"github.com/miu200521358/mu_skin2nif/pkg/shared/base/logging"
	"github.com/miu200521358/mu_skin2nif/pkg/shared/base/merr"
)

// weightEpsilon はウェイト採用の下限閾値を表す。固定値で設定項目にしない。
const weightEpsilon = 0.001

// resolvedInfluence は解決済みインフルエンス1件を表す。
type resolvedInfluence struct {
	BoneIndex int
	Weight    float64
}

// RemapWeightsRequest はウェイトリマップ要求を表す。
type RemapWeightsRequest struct {
	// SourceWeights はソース頂点ID→ボーン名→ウェイトを表す。
	SourceWeights map[int]map[string]float64
	// InfluenceOrder はソーススキンの順序付きインフルエンスリストを表す。
	// スロット充填はこの順序で行う。
	InfluenceOrder []string
	// Correspondence はソース頂点から変換先頂点への対応を表す。
	Correspondence VertexCorrespondence
	// Skin は書き換え対象のスキン構造を表す。
	Skin *model.NifSkin
}

// RemapWeightsResult はウェイトリマップ結果を表す。
type RemapWeightsResult struct {
	// Warnings は発生した警告IDリストを表す。
	Warnings []string
	// MissingBones はボーン表に無くウェイトを破棄したボーン名を表す。
	MissingBones []string
	// TruncatedVertexCount はスロット上限で切り捨てが発生した頂点数を表す。
	TruncatedVertexCount int
}

// RemapWeights はソースのボーンウェイトをパーティション整合の取れたスロット形式へ
// 書き換える。最終ウェイト集合の再正規化は行わない。上流検証が総和1.0を保証して
// おり、別のウェイト剪定ユーティリティの責務とする。
func (uc *Skin2NifUsecase) RemapWeights(request RemapWeightsRequest) (*RemapWeightsResult, error) {
	if request.Skin == nil {
		return nil, merr.New(model.ErrorIDValidation, "リマップ対象スキンが未設定です")
	}
	result := &RemapWeightsResult{}
	if err := runInTransaction(request.Skin, func() error {
		return remapWeightsInto(request, result)
	}); err != nil {
		return nil, err
	}
	return result, nil
}

// remapWeightsInto はリマップ本体を実行する。トランザクション境界の内側で呼ぶ。
func remapWeightsInto(request RemapWeightsRequest, result *RemapWeightsResult) error {
	skin := request.Skin

	// ボーン表はnif形式名で持つため、シーン形式へ揃えて引けるようにする。
	boneIndexes := make(map[string]int, len(skin.Bones))
	for index, name := range skin.Bones {
		boneIndexes[model.ToSceneName(name)] = index
	}

	missingBones := map[string]struct{}{}
	nifWeights := make(map[int][]resolvedInfluence, len(request.SourceWeights))
	for sourceID, boneWeights := range request.SourceWeights {
		resolved := resolveVertexInfluences(boneWeights, request.InfluenceOrder, boneIndexes, missingBones)
		for _, targetID := range request.Correspondence[sourceID] {
			nifWeights[targetID] = resolved
		}
	}
	if len(missingBones) > 0 {
		result.Warnings = append(result.Warnings, model.SkinWarningMissingInfluenceBone)
		result.MissingBones = sortedKeys(missingBones)
	}

	for blockIndex, block := range skin.Partitions {
		ensureBlockBoneCoverage(block, len(skin.Bones))
		localByGlobal := block.LocalSlotByGlobal()

		if len(block.BoneIndices) != len(block.VertexMap) {
			block.BoneIndices = make([]model.WeightSlots, len(block.VertexMap))
		}
		if len(block.VertexWeights) != len(block.VertexMap) {
			block.VertexWeights = make([]model.WeightValues, len(block.VertexMap))
		}

		for partitionVertex, vertexID := range block.VertexMap {
			if vertexID < 0 || vertexID >= skin.VertexCount {
				return merr.Newf(model.ErrorIDPartitionVertexOutOfRange,
					"ブロック%dのパーティション頂点%dが頂点ID%dを範囲外参照しています",
					blockIndex, partitionVertex, vertexID)
			}

			// 全スロットをブロック先頭ボーン・ウェイト0で初期化してから充填する。
			block.BoneIndices[partitionVertex] = model.WeightSlots{}
			block.VertexWeights[partitionVertex] = model.WeightValues{}

			truncated, err := fillVertexSlots(block, partitionVertex, nifWeights[vertexID], localByGlobal, blockIndex)
			if err != nil {
				return err
			}
			if truncated {
				result.TruncatedVertexCount++
			}
		}
	}
	if result.TruncatedVertexCount > 0 {
		result.Warnings = append(result.Warnings, model.SkinWarningWeightsTruncated)
		logRemapWarn("ウェイトスロット上限超過: %d頂点で切り捨てが発生しました", result.TruncatedVertexCount)
	}
	return nil
}

// resolveVertexInfluences は1頂点分のボーンウェイトを閾値剪定し、ボーン表のindexへ解決する。
// インフルエンスリスト順を保ち、表に無いボーンは警告してウェイトごと破棄する。
func resolveVertexInfluences(
	boneWeights map[string]float64,
	influenceOrder []string,
	boneIndexes map[string]int,
	missingBones map[string]struct{},
) []resolvedInfluence {
	resolved := make([]resolvedInfluence, 0, len(boneWeights))
	appendInfluence := func(boneName string, weight float64) {
		if weight <= weightEpsilon {
			return
		}
		index, ok := boneIndexes[boneName]
		if !ok {
			if _, seen := missingBones[boneName]; !seen {
				missingBones[boneName] = struct{}{}
				logRemapWarn("ボーン表に存在しないインフルエンスを破棄します: %s", boneName)
			}
			return
		}
		resolved = append(resolved, resolvedInfluence{BoneIndex: index, Weight: weight})
	}

	consumed := map[string]struct{}{}
	for _, boneName := range influenceOrder {
		weight, ok := boneWeights[boneName]
		if !ok {
			continue
		}
		consumed[boneName] = struct{}{}
		appendInfluence(boneName, weight)
	}
	// インフルエンスリスト外の参照は名前順で後置する。
	leftovers := make([]string, 0)
	for boneName := range boneWeights {
		if _, ok := consumed[boneName]; !ok {
			leftovers = append(leftovers, boneName)
		}
	}
	sort.Strings(leftovers)
	for _, boneName := range leftovers {
		appendInfluence(boneName, boneWeights[boneName])
	}
	return resolved
}

// ensureBlockBoneCoverage はスキンインスタンス全体のボーンindexがブロックの
// ローカル表へ含まれるよう、欠落分を末尾へ昇順追加する。既存項目は並べ替えず、
// 割り当て済みローカルスロットの意味を変えない。
func ensureBlockBoneCoverage(block *model.PartitionBlock, boneCount int) {
	present := make(map[int]struct{}, len(block.Bones))
	for _, global := range block.Bones {
		present[global] = struct{}{}
	}
	for global := 0; global < boneCount; global++ {
		if _, ok := present[global]; !ok {
			block.Bones = append(block.Bones, global)
		}
	}
}

// fillVertexSlots は解決済みインフルエンスを固定スロットへ充填する。
// 上限超過分は反復順のまま黙って切り捨てる。振幅順の並べ替えは行わない。
func fillVertexSlots(
	block *model.PartitionBlock,
	partitionVertex int,
	influences []resolvedInfluence,
	localByGlobal map[int]int,
	blockIndex int,
) (bool, error) {
	slot := 0
	truncated := false
	for _, influence := range influences {
		if influence.Weight <= weightEpsilon {
			continue
		}
		if slot >= model.WeightSlotCapacity {
			truncated = true
			break
		}
		local, ok := localByGlobal[influence.BoneIndex]
		if !ok {
			return false, merr.Newf(model.ErrorIDValidation,
				"ブロック%dのローカルボーン表にindex%dが見つかりません", blockIndex, influence.BoneIndex)
		}
		block.BoneIndices[partitionVertex][slot] = local
		block.VertexWeights[partitionVertex][slot] = influence.Weight
		slot++
	}
	return truncated, nil
}

// sortedKeys は集合の要素を名前順で返す。
func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// logRemapWarn はリマップの警告ログを出力する。
func logRemapWarn(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Warn(format, params...)
}
