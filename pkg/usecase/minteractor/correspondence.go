// 指示: miu200521358
package minteractor

import (
	"sort"

	"github.com/miu200521358/mu_skin2nif/pkg/domain/model"
)

// VertexCorrespondence はソース頂点IDから対応する変換先頂点ID集合への対応を表す。
// 変換先頂点はソース頂点の分割複製であり、各変換先頂点はちょうど1つの
// ソース頂点の集合にのみ現れる。
type VertexCorrespondence map[int][]int

// BuildVertexCorrespondence はソース面リストと変換先三角形リストから頂点対応を構築する。
// 両者は同一ジオメトリを同じ面訪問順で書き出したものであることが前提条件で、
// 面数や面内頂点数が食い違う場合の結果は未定義。検証は上流の書き出し側が行う。
func BuildVertexCorrespondence(sourceFaces [][]int, targetTriangles []model.Triangle) VertexCorrespondence {
	seen := map[int]map[int]struct{}{}
	faceCount := len(sourceFaces)
	if len(targetTriangles) < faceCount {
		faceCount = len(targetTriangles)
	}
	for face := 0; face < faceCount; face++ {
		sourceIDs := sourceFaces[face]
		targetIDs := targetTriangles[face]
		count := len(sourceIDs)
		if len(targetIDs) < count {
			count = len(targetIDs)
		}
		for i := 0; i < count; i++ {
			sourceID := sourceIDs[i]
			if _, ok := seen[sourceID]; !ok {
				seen[sourceID] = map[int]struct{}{}
			}
			seen[sourceID][targetIDs[i]] = struct{}{}
		}
	}

	correspondence := make(VertexCorrespondence, len(seen))
	for sourceID, targetIDs := range seen {
		ids := make([]int, 0, len(targetIDs))
		for targetID := range targetIDs {
			ids = append(ids, targetID)
		}
		sort.Ints(ids)
		correspondence[sourceID] = ids
	}
	return correspondence
}
