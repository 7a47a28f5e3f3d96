// 指示: miu200521358
// Package gltfscene はglTF/GLBシーンの読み込みアダプタを提供する。
package gltfscene

import (
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"

	"github.com/miu200521358/mu_skin2nif/pkg/domain/mmath"
	"github.com/miu200521358/mu_skin2nif/pkg/domain/model"
)

// defaultJointRadius はglTFに存在しないジョイント表示半径の既定値を表す。
const defaultJointRadius = 1.0

// GltfRepository はglTFシーン入力の読み込み契約を表す。
type GltfRepository struct{}

// NewGltfRepository はGltfRepositoryを生成する。
func NewGltfRepository() *GltfRepository {
	return &GltfRepository{}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *GltfRepository) CanLoad(path string) bool {
	ext := filepath.Ext(path)
	return strings.EqualFold(ext, ".glb") || strings.EqualFold(ext, ".gltf")
}

// InferName はパスから表示名を推定する。
func (r *GltfRepository) InferName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load はglTFドキュメントをシーンモデルへ変換する。
func (r *GltfRepository) Load(path string) (*model.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("glTFの読み込みに失敗しました: %w", err)
	}
	return buildScene(doc)
}

// buildScene はglTFドキュメントからシーンツリーを組み立てる。
func buildScene(doc *gltf.Document) (*model.Scene, error) {
	jointNodes := map[uint32]struct{}{}
	for _, skin := range doc.Skins {
		for _, joint := range skin.Joints {
			jointNodes[joint] = struct{}{}
		}
	}

	scene := model.NewScene()
	for index, gltfNode := range doc.Nodes {
		kind := model.NodeKindTransform
		if _, ok := jointNodes[uint32(index)]; ok {
			kind = model.NodeKindJoint
		} else if gltfNode.Mesh != nil {
			kind = model.NodeKindMesh
		}
		node := model.NewNode(gltfNode.Name, kind)
		node.Translation = mmath.NewVec3(
			float64(gltfNode.Translation[0]),
			float64(gltfNode.Translation[1]),
			float64(gltfNode.Translation[2]))
		node.Rotation = mmath.NewQuaternionByValues(
			float64(gltfNode.Rotation[0]),
			float64(gltfNode.Rotation[1]),
			float64(gltfNode.Rotation[2]),
			float64(gltfNode.Rotation[3]))
		node.Scale = mmath.NewVec3(
			float64(gltfNode.Scale[0]),
			float64(gltfNode.Scale[1]),
			float64(gltfNode.Scale[2]))
		if kind == model.NodeKindJoint {
			node.Radius = defaultJointRadius
		}
		scene.AddNode(node)
	}

	// 親子はChildren側にしか現れないため後段で張り直す。
	for index, gltfNode := range doc.Nodes {
		parent := scene.Node(model.NodeID(index))
		for _, childIndex := range gltfNode.Children {
			child := scene.Node(model.NodeID(childIndex))
			if child == nil {
				return nil, fmt.Errorf("子ノード参照が範囲外です: %d", childIndex)
			}
			child.Parent = parent.ID
			parent.Children = append(parent.Children, child.ID)
		}
	}

	for index, gltfNode := range doc.Nodes {
		if gltfNode.Mesh == nil {
			continue
		}
		mesh, err := buildMesh(doc, gltfNode)
		if err != nil {
			return nil, fmt.Errorf("メッシュ%dの変換に失敗しました: %w", *gltfNode.Mesh, err)
		}
		scene.Node(model.NodeID(index)).Mesh = mesh
	}
	return scene, nil
}

// buildMesh は最初のプリミティブをメッシュモデルへ変換する。
func buildMesh(doc *gltf.Document, gltfNode *gltf.Node) (*model.Mesh, error) {
	gltfMesh := doc.Meshes[*gltfNode.Mesh]
	if len(gltfMesh.Primitives) == 0 {
		return nil, fmt.Errorf("プリミティブがありません")
	}
	primitive := gltfMesh.Primitives[0]

	positionAccessor, ok := primitive.Attributes[gltf.POSITION]
	if !ok {
		return nil, fmt.Errorf("POSITION属性がありません")
	}
	positions, err := readVec3Accessor(doc, positionAccessor)
	if err != nil {
		return nil, err
	}

	if primitive.Indices == nil {
		return nil, fmt.Errorf("インデックスバッファがありません")
	}
	indices, err := readIndexAccessor(doc, *primitive.Indices)
	if err != nil {
		return nil, err
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("三角形リストの長さが不正です: %d", len(indices))
	}
	faces := make([][]int, 0, len(indices)/3)
	for cursor := 0; cursor+2 < len(indices); cursor += 3 {
		faces = append(faces, []int{indices[cursor], indices[cursor+1], indices[cursor+2]})
	}

	mesh := &model.Mesh{Positions: positions, Faces: faces}
	if gltfNode.Skin != nil {
		skin, err := buildSkinBinding(doc, primitive, *gltfNode.Skin, len(positions))
		if err != nil {
			return nil, err
		}
		mesh.Skin = skin
	}
	return mesh, nil
}

// buildSkinBinding はJOINTS/WEIGHTS属性と逆バインド行列からスキンバインドを作る。
func buildSkinBinding(doc *gltf.Document, primitive *gltf.Primitive, skinIndex uint32, vertexCount int) (*model.SkinBinding, error) {
	gltfSkin := doc.Skins[skinIndex]
	influences := make([]string, len(gltfSkin.Joints))
	for index, joint := range gltfSkin.Joints {
		influences[index] = doc.Nodes[joint].Name
	}
	binding := model.NewSkinBinding(influences)

	jointsAccessor, ok := primitive.Attributes[gltf.JOINTS_0]
	if !ok {
		return nil, fmt.Errorf("JOINTS_0属性がありません")
	}
	weightsAccessor, ok := primitive.Attributes[gltf.WEIGHTS_0]
	if !ok {
		return nil, fmt.Errorf("WEIGHTS_0属性がありません")
	}
	joints, err := readVec4IntAccessor(doc, jointsAccessor)
	if err != nil {
		return nil, err
	}
	weights, err := readVec4FloatAccessor(doc, weightsAccessor)
	if err != nil {
		return nil, err
	}
	if len(joints) != vertexCount || len(weights) != vertexCount {
		return nil, fmt.Errorf("スキン属性の要素数が頂点数と一致しません")
	}

	for vertexID := 0; vertexID < vertexCount; vertexID++ {
		boneWeights := map[string]float64{}
		for slot := 0; slot < 4; slot++ {
			weight := weights[vertexID][slot]
			if weight == 0 {
				continue
			}
			jointSlot := joints[vertexID][slot]
			if jointSlot < 0 || jointSlot >= len(influences) {
				return nil, fmt.Errorf("ジョイント参照が範囲外です: %d", jointSlot)
			}
			boneWeights[influences[jointSlot]] += weight
		}
		if len(boneWeights) > 0 {
			binding.Weights[vertexID] = boneWeights
		}
	}

	if gltfSkin.InverseBindMatrices != nil {
		matrices, err := readMat4Accessor(doc, *gltfSkin.InverseBindMatrices)
		if err != nil {
			return nil, err
		}
		if len(matrices) != len(influences) {
			return nil, fmt.Errorf("逆バインド行列の本数がジョイント数と一致しません")
		}
		for index, name := range influences {
			binding.BindPreMatrices[name] = matrices[index]
		}
	}
	return binding, nil
}

// accessorBytes はアクセサのi番目要素の先頭バイト位置を解決する。
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elementSize uint32) ([]byte, uint32, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("疎アクセサは未対応です")
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	data := doc.Buffers[bufferView.Buffer].Data
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elementSize
	}
	begin := bufferView.ByteOffset + accessor.ByteOffset
	end := begin + (accessor.Count-1)*stride + elementSize
	if uint32(len(data)) < end {
		return nil, 0, fmt.Errorf("バッファ長が不足しています: %d < %d", len(data), end)
	}
	return data[begin:], stride, nil
}

// componentSize はコンポーネント型のバイト数を返す。
func componentSize(componentType gltf.ComponentType) uint32 {
	switch componentType {
	case gltf.ComponentByte, gltf.ComponentUbyte:
		return 1
	case gltf.ComponentShort, gltf.ComponentUshort:
		return 2
	default:
		return 4
	}
}

// readComponent はコンポーネント1個を数値へ復号する。
func readComponent(data []byte, componentType gltf.ComponentType) float64 {
	switch componentType {
	case gltf.ComponentByte:
		return float64(int8(data[0]))
	case gltf.ComponentUbyte:
		return float64(data[0])
	case gltf.ComponentShort:
		return float64(int16(binary.LittleEndian.Uint16(data)))
	case gltf.ComponentUshort:
		return float64(binary.LittleEndian.Uint16(data))
	case gltf.ComponentUint:
		return float64(binary.LittleEndian.Uint32(data))
	default:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(data)))
	}
}

// readVec3Accessor はVEC3 floatアクセサを読む。
func readVec3Accessor(doc *gltf.Document, accessorIndex uint32) ([]mmath.Vec3, error) {
	accessor := doc.Accessors[accessorIndex]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("VEC3 floatアクセサではありません: %d", accessorIndex)
	}
	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}
	values := make([]mmath.Vec3, accessor.Count)
	for index := uint32(0); index < accessor.Count; index++ {
		element := data[index*stride:]
		values[index] = mmath.NewVec3(
			readComponent(element[0:], gltf.ComponentFloat),
			readComponent(element[4:], gltf.ComponentFloat),
			readComponent(element[8:], gltf.ComponentFloat))
	}
	return values, nil
}

// readIndexAccessor はSCALAR整数アクセサを読む。
func readIndexAccessor(doc *gltf.Document, accessorIndex uint32) ([]int, error) {
	accessor := doc.Accessors[accessorIndex]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("SCALARアクセサではありません: %d", accessorIndex)
	}
	size := componentSize(accessor.ComponentType)
	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}
	values := make([]int, accessor.Count)
	for index := uint32(0); index < accessor.Count; index++ {
		values[index] = int(readComponent(data[index*stride:], accessor.ComponentType))
	}
	return values, nil
}

// readVec4IntAccessor はVEC4整数アクセサを読む。
func readVec4IntAccessor(doc *gltf.Document, accessorIndex uint32) ([][4]int, error) {
	accessor := doc.Accessors[accessorIndex]
	if accessor.Type != gltf.AccessorVec4 {
		return nil, fmt.Errorf("VEC4アクセサではありません: %d", accessorIndex)
	}
	size := componentSize(accessor.ComponentType)
	data, stride, err := accessorBytes(doc, accessor, size*4)
	if err != nil {
		return nil, err
	}
	values := make([][4]int, accessor.Count)
	for index := uint32(0); index < accessor.Count; index++ {
		element := data[index*stride:]
		for slot := uint32(0); slot < 4; slot++ {
			values[index][slot] = int(readComponent(element[slot*size:], accessor.ComponentType))
		}
	}
	return values, nil
}

// readVec4FloatAccessor はVEC4実数アクセサを読む。正規化整数型は実数へ戻す。
func readVec4FloatAccessor(doc *gltf.Document, accessorIndex uint32) ([][4]float64, error) {
	accessor := doc.Accessors[accessorIndex]
	if accessor.Type != gltf.AccessorVec4 {
		return nil, fmt.Errorf("VEC4アクセサではありません: %d", accessorIndex)
	}
	size := componentSize(accessor.ComponentType)
	data, stride, err := accessorBytes(doc, accessor, size*4)
	if err != nil {
		return nil, err
	}
	scale := 1.0
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		scale = 1.0 / 255.0
	case gltf.ComponentUshort:
		scale = 1.0 / 65535.0
	}
	values := make([][4]float64, accessor.Count)
	for index := uint32(0); index < accessor.Count; index++ {
		element := data[index*stride:]
		for slot := uint32(0); slot < 4; slot++ {
			values[index][slot] = readComponent(element[slot*size:], accessor.ComponentType) * scale
		}
	}
	return values, nil
}

// readMat4Accessor はMAT4 floatアクセサを読む。glTFは列優先で格納する。
func readMat4Accessor(doc *gltf.Document, accessorIndex uint32) ([]mmath.Mat4, error) {
	accessor := doc.Accessors[accessorIndex]
	if accessor.Type != gltf.AccessorMat4 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("MAT4 floatアクセサではありません: %d", accessorIndex)
	}
	data, stride, err := accessorBytes(doc, accessor, 64)
	if err != nil {
		return nil, err
	}
	values := make([]mmath.Mat4, accessor.Count)
	for index := uint32(0); index < accessor.Count; index++ {
		element := data[index*stride:]
		matrix := mmath.NewMat4()
		for column := 0; column < 4; column++ {
			for row := 0; row < 4; row++ {
				offset := uint32(column*4+row) * 4
				matrix.Mat4.Set(row, column, readComponent(element[offset:], gltf.ComponentFloat))
			}
		}
		values[index] = matrix
	}
	return values, nil
}
