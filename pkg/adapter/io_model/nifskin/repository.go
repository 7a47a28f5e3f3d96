// 指示: miu200521358
// Package nifskin はスキンパーティション構造のバイナリスナップショット入出力を提供する。
//
// 形式は本ツール専用のリトルエンディアン固定レイアウトで、ヘッダにマジックと
// バージョンを持つ。ウェイトはfloat32へ丸めて格納する。
package nifskin

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_skin2nif/pkg/domain/model"
	"github.com/miu200521358/mu_skin2nif/pkg/usecase/port/moutput"
)

const (
	skinMagic       = "MUSK"
	skinVersion     = uint32(1)
	skinExtension   = ".musk"
	maxStringLength = 4096
	maxRecordCount  = 1 << 24
)

// NifSkinRepository はスキン構造スナップショットの入出力契約を表す。
type NifSkinRepository struct{}

// NewNifSkinRepository はNifSkinRepositoryを生成する。
func NewNifSkinRepository() *NifSkinRepository {
	return &NifSkinRepository{}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *NifSkinRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), skinExtension)
}

// InferName はパスから表示名を推定する。
func (r *NifSkinRepository) InferName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Load はスナップショットファイルからスキン構造を復元する。
func (r *NifSkinRepository) Load(path string) (*model.NifSkin, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("スキン構造ファイルを開けません: %w", err)
	}
	defer file.Close()
	skin, err := readSkin(bufio.NewReader(file))
	if err != nil {
		return nil, fmt.Errorf("スキン構造の読み込みに失敗しました(%s): %w", path, err)
	}
	return skin, nil
}

// Save はスキン構造をスナップショットファイルへ書き出す。
func (r *NifSkinRepository) Save(path string, skin *model.NifSkin, options moutput.SaveOptions) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("スキン構造ファイルを作成できません: %w", err)
	}
	defer file.Close()
	writer := bufio.NewWriter(file)
	if err := writeSkin(writer, skin); err != nil {
		return fmt.Errorf("スキン構造の書き出しに失敗しました(%s): %w", path, err)
	}
	return writer.Flush()
}

func readSkin(reader io.Reader) (*model.NifSkin, error) {
	magic := make([]byte, 4)
	if _, err := io.ReadFull(reader, magic); err != nil {
		return nil, err
	}
	if string(magic) != skinMagic {
		return nil, fmt.Errorf("マジックが一致しません: %q", magic)
	}
	version, err := readUint32(reader)
	if err != nil {
		return nil, err
	}
	if version != skinVersion {
		return nil, fmt.Errorf("未対応のバージョンです: %d", version)
	}

	skin := &model.NifSkin{}
	if skin.Name, err = readString(reader); err != nil {
		return nil, err
	}

	boneCount, err := readCount(reader)
	if err != nil {
		return nil, err
	}
	skin.Bones = make([]string, boneCount)
	for index := range skin.Bones {
		if skin.Bones[index], err = readString(reader); err != nil {
			return nil, err
		}
	}

	vertexCount, err := readCount(reader)
	if err != nil {
		return nil, err
	}
	skin.VertexCount = vertexCount

	triangleCount, err := readCount(reader)
	if err != nil {
		return nil, err
	}
	skin.Triangles = make([]model.Triangle, triangleCount)
	for index := range skin.Triangles {
		for corner := 0; corner < 3; corner++ {
			value, err := readUint32(reader)
			if err != nil {
				return nil, err
			}
			skin.Triangles[index][corner] = int(value)
		}
	}

	blockCount, err := readCount(reader)
	if err != nil {
		return nil, err
	}
	skin.Partitions = make([]*model.PartitionBlock, blockCount)
	for blockIndex := range skin.Partitions {
		block, err := readBlock(reader)
		if err != nil {
			return nil, fmt.Errorf("ブロック%d: %w", blockIndex, err)
		}
		skin.Partitions[blockIndex] = block
	}
	return skin, nil
}

func readBlock(reader io.Reader) (*model.PartitionBlock, error) {
	block := &model.PartitionBlock{}

	boneCount, err := readCount(reader)
	if err != nil {
		return nil, err
	}
	block.Bones = make([]int, boneCount)
	for index := range block.Bones {
		value, err := readUint32(reader)
		if err != nil {
			return nil, err
		}
		block.Bones[index] = int(value)
	}

	vertexCount, err := readCount(reader)
	if err != nil {
		return nil, err
	}
	block.VertexMap = make([]int, vertexCount)
	block.BoneIndices = make([]model.WeightSlots, vertexCount)
	block.VertexWeights = make([]model.WeightValues, vertexCount)
	for index := range block.VertexMap {
		value, err := readUint32(reader)
		if err != nil {
			return nil, err
		}
		block.VertexMap[index] = int(value)
	}
	for index := range block.BoneIndices {
		for slot := 0; slot < model.WeightSlotCapacity; slot++ {
			var local uint16
			if err := binary.Read(reader, binary.LittleEndian, &local); err != nil {
				return nil, err
			}
			block.BoneIndices[index][slot] = int(local)
		}
		for slot := 0; slot < model.WeightSlotCapacity; slot++ {
			var weight float32
			if err := binary.Read(reader, binary.LittleEndian, &weight); err != nil {
				return nil, err
			}
			block.VertexWeights[index][slot] = float64(weight)
		}
	}
	return block, nil
}

func writeSkin(writer io.Writer, skin *model.NifSkin) error {
	if _, err := writer.Write([]byte(skinMagic)); err != nil {
		return err
	}
	if err := writeUint32(writer, skinVersion); err != nil {
		return err
	}
	if err := writeString(writer, skin.Name); err != nil {
		return err
	}
	if err := writeUint32(writer, uint32(len(skin.Bones))); err != nil {
		return err
	}
	for _, bone := range skin.Bones {
		if err := writeString(writer, bone); err != nil {
			return err
		}
	}
	if err := writeUint32(writer, uint32(skin.VertexCount)); err != nil {
		return err
	}
	if err := writeUint32(writer, uint32(len(skin.Triangles))); err != nil {
		return err
	}
	for _, triangle := range skin.Triangles {
		for corner := 0; corner < 3; corner++ {
			if err := writeUint32(writer, uint32(triangle[corner])); err != nil {
				return err
			}
		}
	}
	if err := writeUint32(writer, uint32(len(skin.Partitions))); err != nil {
		return err
	}
	for _, block := range skin.Partitions {
		if err := writeBlock(writer, block); err != nil {
			return err
		}
	}
	return nil
}

func writeBlock(writer io.Writer, block *model.PartitionBlock) error {
	if err := writeUint32(writer, uint32(len(block.Bones))); err != nil {
		return err
	}
	for _, bone := range block.Bones {
		if err := writeUint32(writer, uint32(bone)); err != nil {
			return err
		}
	}
	if len(block.BoneIndices) != len(block.VertexMap) || len(block.VertexWeights) != len(block.VertexMap) {
		return fmt.Errorf("ブロックのスロット数が頂点表と一致しません")
	}
	if err := writeUint32(writer, uint32(len(block.VertexMap))); err != nil {
		return err
	}
	for _, vertexID := range block.VertexMap {
		if err := writeUint32(writer, uint32(vertexID)); err != nil {
			return err
		}
	}
	for index := range block.VertexMap {
		for slot := 0; slot < model.WeightSlotCapacity; slot++ {
			if err := binary.Write(writer, binary.LittleEndian, uint16(block.BoneIndices[index][slot])); err != nil {
				return err
			}
		}
		for slot := 0; slot < model.WeightSlotCapacity; slot++ {
			if err := binary.Write(writer, binary.LittleEndian, float32(block.VertexWeights[index][slot])); err != nil {
				return err
			}
		}
	}
	return nil
}

func readUint32(reader io.Reader) (uint32, error) {
	var value uint32
	if err := binary.Read(reader, binary.LittleEndian, &value); err != nil {
		return 0, err
	}
	return value, nil
}

func readCount(reader io.Reader) (int, error) {
	value, err := readUint32(reader)
	if err != nil {
		return 0, err
	}
	if value > maxRecordCount {
		return 0, fmt.Errorf("要素数が大きすぎます: %d", value)
	}
	return int(value), nil
}

func readString(reader io.Reader) (string, error) {
	length, err := readUint32(reader)
	if err != nil {
		return "", err
	}
	if length > maxStringLength {
		return "", fmt.Errorf("文字列長が大きすぎます: %d", length)
	}
	buffer := make([]byte, length)
	if _, err := io.ReadFull(reader, buffer); err != nil {
		return "", err
	}
	return string(buffer), nil
}

func writeUint32(writer io.Writer, value uint32) error {
	return binary.Write(writer, binary.LittleEndian, value)
}

func writeString(writer io.Writer, value string) error {
	if err := writeUint32(writer, uint32(len(value))); err != nil {
		return err
	}
	_, err := writer.Write([]byte(value))
	return err
}
