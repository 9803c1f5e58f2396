package validator

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Object 待校验的 JSON 对象
// 每次读取字段都会记录类型错误和规则错误，最后通过 Issues 统一取出
type Object struct {
	fields map[string]json.RawMessage
	issues Issues
}

// DecodeObject 解析请求体
// 空请求体按空对象处理；请求体不是 JSON 对象时返回根路径上的错误
func DecodeObject(body []byte) (*Object, Issues) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &Object{fields: map[string]json.RawMessage{}}, nil
	}
	if !json.Valid(trimmed) {
		return nil, Issues{newIssue(CodeInvalidType, "Invalid input: malformed JSON body")}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil || fields == nil {
		return nil, Issues{typeMismatch("object", jsonType(trimmed))}
	}
	return &Object{fields: fields}, nil
}

// Issues 返回目前收集到的所有错误
func (o *Object) Issues() Issues {
	return o.issues
}

// String 读取字符串字段
// 参数:
//   - name: 字段名
//   - optional: 字段缺失时是否允许
//   - trim: 校验通过后是否去掉首尾空白
//   - rules: 在去空白之前依次执行的规则
//
// 返回:
//   - *string: 字段缺失或类型错误时为 nil
func (o *Object) String(name string, optional, trim bool, rules ...Rule) *string {
	raw, ok := o.fields[name]
	if !ok {
		if !optional {
			o.issues = append(o.issues, typeMismatch("string", "undefined", name))
		}
		return nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil || isNull(raw) {
		o.issues = append(o.issues, typeMismatch("string", jsonType(raw), name))
		return nil
	}

	o.issues = append(o.issues, apply(s, rules, name)...)
	if trim {
		s = strings.TrimSpace(s)
	}
	return &s
}

// StringSlice 读取字符串数组字段，每个元素去掉首尾空白
// elemRules 在去空白之后作用于每个元素，rules 作用于数组本身
func (o *Object) StringSlice(name string, optional bool, elemRules []Rule, rules ...Rule) []string {
	raw, ok := o.fields[name]
	if !ok {
		if !optional {
			o.issues = append(o.issues, typeMismatch("array", "undefined", name))
		}
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || isNull(raw) {
		o.issues = append(o.issues, typeMismatch("array", jsonType(raw), name))
		return nil
	}

	out := make([]string, 0, len(items))
	for i, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil || isNull(item) {
			o.issues = append(o.issues, typeMismatch("string", jsonType(item), name, i))
			continue
		}
		s = strings.TrimSpace(s)
		o.issues = append(o.issues, apply(s, elemRules, name, i)...)
		out = append(out, s)
	}

	o.issues = append(o.issues, apply(items, rules, name)...)
	return out
}

// Bool 读取可选的布尔字段
func (o *Object) Bool(name string) *bool {
	raw, ok := o.fields[name]
	if !ok {
		return nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil || isNull(raw) {
		o.issues = append(o.issues, typeMismatch("boolean", jsonType(raw), name))
		return nil
	}
	return &b
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// jsonType 返回 JSON 值的类型名
func jsonType(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "undefined"
	}
	switch trimmed[0] {
	case '"':
		return "string"
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "boolean"
	case 'n':
		return "null"
	}
	return "number"
}
