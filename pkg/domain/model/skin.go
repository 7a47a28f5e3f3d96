// 指示: miu200521358
package model

// WeightSlotCapacity は頂点あたりの固定ウェイトスロット数を表す。変換先エンジンの制約値。
const WeightSlotCapacity = 4

// WeightSlots は固定長のローカルボーンスロット配列を表す。
type WeightSlots [WeightSlotCapacity]int

// WeightValues は固定長のウェイト値配列を表す。
type WeightValues [WeightSlotCapacity]float64

// Triangle は三角形の頂点ID3つ組を表す。
type Triangle [3]int

// PartitionBlock はスキンパーティションの1ブロックを表す。
type PartitionBlock struct {
	// Bones はブロックローカルのボーン表を表す。値はNifSkin.Bonesへのグローバルindex。
	Bones []int
	// VertexMap はブロック内頂点からスキン全体の頂点IDへの対応を表す。
	VertexMap []int
	// BoneIndices はブロック内頂点ごとのローカルボーンスロットを表す。
	BoneIndices []WeightSlots
	// VertexWeights はブロック内頂点ごとのウェイト値を表す。
	VertexWeights []WeightValues
}

// LocalSlotByGlobal はグローバルボーンindexからローカル表の位置への対応を返す。
func (b *PartitionBlock) LocalSlotByGlobal() map[int]int {
	slots := make(map[int]int, len(b.Bones))
	for local, global := range b.Bones {
		slots[global] = local
	}
	return slots
}

// NifSkin は変換先バイナリスキン構造のうちリマッパーが書き換える部分集合を表す。
type NifSkin struct {
	Name string
	// Bones はスキンインスタンス全体で共有する順序付きボーン名リストを表す。
	Bones []string
	// Partitions は順序付きパーティションブロックリストを表す。
	Partitions []*PartitionBlock
	// Triangles は対応付けの鍵となる三角形リストを面の訪問順で保持する。
	Triangles []Triangle
	// VertexCount はスキン全体の頂点数を表す。
	VertexCount int
}

// BoneIndexByName はボーン名からグローバルindexへの対応を返す。
func (s *NifSkin) BoneIndexByName() map[string]int {
	indexes := make(map[string]int, len(s.Bones))
	for index, name := range s.Bones {
		indexes[name] = index
	}
	return indexes
}
