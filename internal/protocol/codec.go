package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Encoding 帧编码方式
type Encoding string

const (
	// EncodingJSON 文本帧
	EncodingJSON Encoding = "json"
	// EncodingProtobuf 二进制帧（google.protobuf.Struct）
	EncodingProtobuf Encoding = "protobuf"
)

// ErrUnknownEncoding 未知的帧编码
var ErrUnknownEncoding = errors.New("未知的帧编码")

// ParseEncoding 解析配置中的编码名称
func ParseEncoding(name string) (Encoding, error) {
	switch Encoding(name) {
	case EncodingJSON, EncodingProtobuf:
		return Encoding(name), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// Binary 是否以二进制消息发送
func (e Encoding) Binary() bool {
	return e == EncodingProtobuf
}

// EncodeFrame 按指定编码序列化帧
func EncodeFrame(frame *Frame, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingJSON:
		return json.Marshal(frame)
	case EncodingProtobuf:
		fields, err := toMap(frame)
		if err != nil {
			return nil, err
		}
		st, err := structpb.NewStruct(fields)
		if err != nil {
			return nil, fmt.Errorf("转换帧失败: %w", err)
		}
		return proto.Marshal(st)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}
}

// DecodeFrame 按指定编码反序列化帧
func DecodeFrame(data []byte, enc Encoding) (*Frame, error) {
	var raw []byte
	switch enc {
	case EncodingJSON:
		raw = data
	case EncodingProtobuf:
		var st structpb.Struct
		if err := proto.Unmarshal(data, &st); err != nil {
			return nil, fmt.Errorf("解析帧失败: %w", err)
		}
		b, err := json.Marshal(st.AsMap())
		if err != nil {
			return nil, fmt.Errorf("解析帧失败: %w", err)
		}
		raw = b
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, enc)
	}

	var frame Frame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return nil, fmt.Errorf("解析帧失败: %w", err)
	}
	return &frame, nil
}

// toMap structpb 只接受基础类型，先经由 JSON 展开
func toMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("序列化帧失败: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("序列化帧失败: %w", err)
	}
	return m, nil
}
