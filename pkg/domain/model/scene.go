// 指示: miu200521358
// Package model はシーンとスキンアセットのドメインモデルを提供する。
package model

import (
	"github.com/miu200521358/mu_skin2nif/pkg/domain/mmath"
)

// NodeID はシーンノードの識別子を表す。親子・参照はポインタではなくIDで保持する。
type NodeID int

// NodeIDNone は未設定ノードIDを表す。
const NodeIDNone NodeID = -1

// NodeKind はノード種別を表す。
type NodeKind int

const (
	// NodeKindTransform は一般トランスフォームノードを表す。
	NodeKindTransform NodeKind = iota
	// NodeKindJoint はスケルトンジョイントを表す。
	NodeKindJoint
	// NodeKindMesh はメッシュノードを表す。
	NodeKindMesh
)

// Channel はトランスフォームチャンネル名を表す。
type Channel string

const (
	ChannelTX Channel = "tx"
	ChannelTY Channel = "ty"
	ChannelTZ Channel = "tz"
	ChannelRX Channel = "rx"
	ChannelRY Channel = "ry"
	ChannelRZ Channel = "rz"
	ChannelSX Channel = "sx"
	ChannelSY Channel = "sy"
	ChannelSZ Channel = "sz"
)

// TransformChannels は全トランスフォームチャンネルを保持する。
var TransformChannels = []Channel{
	ChannelTX, ChannelTY, ChannelTZ,
	ChannelRX, ChannelRY, ChannelRZ,
	ChannelSX, ChannelSY, ChannelSZ,
}

// TranslateChannels は移動チャンネルを保持する。
var TranslateChannels = []Channel{ChannelTX, ChannelTY, ChannelTZ}

// Node はシーンノードを表す。
type Node struct {
	ID       NodeID
	Name     string
	Kind     NodeKind
	Parent   NodeID
	Children []NodeID

	Translation mmath.Vec3
	Rotation    mmath.Quaternion
	Scale       mmath.Vec3

	// Radius はジョイント表示半径を表す。
	Radius float64
	// GeometryScale はメッシュ形状の一様スケール属性を表す。
	GeometryScale float64

	Mesh *Mesh

	// Locked はロック済みチャンネル集合を表す。
	Locked map[Channel]bool
	// Drivers はチャンネルへの外部ドライバ接続をID参照で保持する。
	Drivers map[Channel]NodeID
}

// NewNode はノードを生成する。
func NewNode(name string, kind NodeKind) *Node {
	return &Node{
		ID:            NodeIDNone,
		Name:          name,
		Kind:          kind,
		Parent:        NodeIDNone,
		Rotation:      mmath.NewQuaternion(),
		Scale:         mmath.ONE_VEC3,
		GeometryScale: 1.0,
		Locked:        map[Channel]bool{},
		Drivers:       map[Channel]NodeID{},
	}
}

// LocalMatrix はローカル変換行列を返す。
func (n *Node) LocalMatrix() mmath.Mat4 {
	return mmath.ComposeMat4(n.Translation, n.Rotation, n.Scale)
}

// LockChannels は指定チャンネルをロックする。
func (n *Node) LockChannels(channels []Channel) {
	for _, channel := range channels {
		n.Locked[channel] = true
	}
}

// Constraint はコンストレイント参照をデータレコードで表す。
type Constraint struct {
	Source  NodeID
	Target  NodeID
	Channel Channel
}

// Scene はエディタシーンの明示ツリー表現を表す。
type Scene struct {
	Nodes       []*Node
	Constraints []Constraint
}

// NewScene はシーンを生成する。
func NewScene() *Scene {
	return &Scene{}
}

// AddNode はノードを登録しIDを割り当てる。親が設定済みの場合は親の子リストへ繋ぐ。
func (s *Scene) AddNode(node *Node) NodeID {
	node.ID = NodeID(len(s.Nodes))
	s.Nodes = append(s.Nodes, node)
	if node.Parent != NodeIDNone {
		parent := s.Node(node.Parent)
		if parent != nil {
			parent.Children = append(parent.Children, node.ID)
		}
	}
	return node.ID
}

// Node はIDからノードを返す。範囲外はnilを返す。
func (s *Scene) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(s.Nodes) {
		return nil
	}
	return s.Nodes[id]
}

// NodeByName は名前が一致する最初のノードを返す。
func (s *Scene) NodeByName(name string) *Node {
	for _, node := range s.Nodes {
		if node.Name == name {
			return node
		}
	}
	return nil
}

// ChildJoints は直下の子ジョイントIDを返す。
func (s *Scene) ChildJoints(id NodeID) []NodeID {
	node := s.Node(id)
	if node == nil {
		return nil
	}
	children := make([]NodeID, 0, len(node.Children))
	for _, childID := range node.Children {
		child := s.Node(childID)
		if child != nil && child.Kind == NodeKindJoint {
			children = append(children, childID)
		}
	}
	return children
}

// WorldMatrix はノードのワールド変換行列を返す。
func (s *Scene) WorldMatrix(id NodeID) mmath.Mat4 {
	node := s.Node(id)
	if node == nil {
		return mmath.NewMat4()
	}
	local := node.LocalMatrix()
	if node.Parent == NodeIDNone {
		return local
	}
	return s.WorldMatrix(node.Parent).Mul(local)
}

// WorldPosition はノードのワールド位置を返す。
func (s *Scene) WorldPosition(id NodeID) mmath.Vec3 {
	return s.WorldMatrix(id).Translation()
}

// Mesh はポリゴンメッシュを表す。頂点位置はオブジェクト空間で保持する。
type Mesh struct {
	Positions []mmath.Vec3
	// Faces は面ごとの頂点IDリストを面の訪問順で保持する。
	Faces [][]int
	Skin  *SkinBinding
}

// SkinBinding はメッシュのスキンバインドを表す。
type SkinBinding struct {
	// Influences は順序付きインフルエンスボーン名リストを表す。
	Influences []string
	// Weights は頂点ID→ボーン名→ウェイトの対応を表す。正規化も上限も仮定しない。
	Weights map[int]map[string]float64
	// BindPreMatrices はインフルエンスごとの逆バインド行列を表す。
	BindPreMatrices map[string]mmath.Mat4
}

// NewSkinBinding はスキンバインドを生成する。
func NewSkinBinding(influences []string) *SkinBinding {
	return &SkinBinding{
		Influences:      influences,
		Weights:         map[int]map[string]float64{},
		BindPreMatrices: map[string]mmath.Mat4{},
	}
}
