package script

import (
	"context"
	"fmt"

	"github.com/tidwall/gjson"
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/blotsync/internal/blot"
	"github.com/dshills/blotsync/internal/inspect"
	"github.com/dshills/blotsync/internal/surface"
)

const nodeTypeName = "blotsync.node"

// Env is what a script operates on.
type Env struct {
	Doc    *surface.Document
	Root   *surface.Node
	Scroll *blot.Scroll

	// BlockTag is the element surface.paragraph creates. Defaults to "p".
	BlockTag string
}

// Bind installs the surface and scroll globals for env.
func Bind(s *State, env Env) error {
	if env.Doc == nil || env.Root == nil || env.Scroll == nil {
		return ErrIncompleteEnv
	}
	if env.BlockTag == "" {
		env.BlockTag = "p"
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStateClosed
	}

	b := &binder{env: env}
	L := s.L
	mt := L.NewTypeMetatable(nodeTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), b.nodeMethods()))
	L.SetField(mt, "__eq", L.NewFunction(nodeEqual))
	L.SetField(mt, "__tostring", L.NewFunction(nodeString))

	L.SetGlobal("surface", L.SetFuncs(L.NewTable(), b.surfaceFuncs()))
	L.SetGlobal("scroll", L.SetFuncs(L.NewTable(), b.scrollFuncs()))
	return nil
}

type binder struct {
	env Env
}

func (b *binder) surfaceFuncs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"root": func(L *lua.LState) int {
			pushNode(L, b.env.Root)
			return 1
		},
		"paragraph": func(L *lua.LState) int {
			block := b.env.Doc.CreateElement(b.env.BlockTag)
			text := b.env.Doc.CreateText(L.OptString(1, ""))
			check(L, block.AppendChild(text))
			check(L, b.env.Root.AppendChild(block))
			pushNode(L, text)
			return 1
		},
		"element": func(L *lua.LState) int {
			pushNode(L, b.env.Doc.CreateElement(L.CheckString(1)))
			return 1
		},
		"text": func(L *lua.LState) int {
			pushNode(L, b.env.Doc.CreateText(L.OptString(1, "")))
			return 1
		},
		"deliver": func(L *lua.LState) int {
			var n int
			guard(L, func() { n = b.env.Doc.Deliver() })
			L.Push(lua.LNumber(n))
			return 1
		},
		"pending": func(L *lua.LState) int {
			L.Push(lua.LNumber(b.env.Doc.Pending()))
			return 1
		},
	}
}

func (b *binder) scrollFuncs() map[string]lua.LGFunction {
	sc := b.env.Scroll
	return map[string]lua.LGFunction{
		"sync": func(L *lua.LState) int {
			ctx := L.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			check(L, sc.Sync(ctx, nil, blot.NewContext()))
			return 0
		},
		"insert_at": func(L *lua.LState) int {
			index := L.CheckInt(1)
			value := L.CheckString(2)
			def := toAny(L.Get(3))
			guard(L, func() { sc.InsertAt(index, value, def) })
			return 0
		},
		"delete_at": func(L *lua.LState) int {
			index, length := L.CheckInt(1), L.CheckInt(2)
			guard(L, func() { sc.DeleteAt(index, length) })
			return 0
		},
		"format_at": func(L *lua.LState) int {
			index, length := L.CheckInt(1), L.CheckInt(2)
			name := L.CheckString(3)
			value := toAny(L.Get(4))
			guard(L, func() { sc.FormatAt(index, length, name, value) })
			return 0
		},
		"length": func(L *lua.LState) int {
			L.Push(lua.LNumber(sc.Length()))
			return 1
		},
		"text": func(L *lua.LState) int {
			L.Push(lua.LString(blot.Text(sc)))
			return 1
		},
		"dump": func(L *lua.LState) int {
			L.Push(lua.LString(inspect.Dump(sc)))
			return 1
		},
		"query": func(L *lua.LState) int {
			path := L.CheckString(1)
			L.Push(toLua(L, gjson.Get(inspect.Dump(sc), path)))
			return 1
		},
	}
}

func (b *binder) nodeMethods() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"id": func(L *lua.LState) int {
			L.Push(lua.LString(checkNode(L, 1).ID().String()))
			return 1
		},
		"tag": func(L *lua.LState) int {
			L.Push(lua.LString(checkNode(L, 1).Tag()))
			return 1
		},
		"text": func(L *lua.LState) int {
			L.Push(lua.LString(checkNode(L, 1).TextContent()))
			return 1
		},
		"set_text": func(L *lua.LState) int {
			check(L, checkNode(L, 1).SetData(L.CheckString(2)))
			return 0
		},
		"split": func(L *lua.LState) int {
			tail, err := checkNode(L, 1).SplitText(L.CheckInt(2))
			check(L, err)
			pushNode(L, tail)
			return 1
		},
		"append": func(L *lua.LState) int {
			check(L, checkNode(L, 1).AppendChild(checkNode(L, 2)))
			return 0
		},
		"append_text": func(L *lua.LState) int {
			n := checkNode(L, 1)
			text := b.env.Doc.CreateText(L.CheckString(2))
			check(L, n.AppendChild(text))
			pushNode(L, text)
			return 1
		},
		"insert_before": func(L *lua.LState) int {
			n, child := checkNode(L, 1), checkNode(L, 2)
			var ref *surface.Node
			if L.Get(3) != lua.LNil {
				ref = checkNode(L, 3)
			}
			check(L, n.InsertBefore(child, ref))
			return 0
		},
		"remove": func(L *lua.LState) int {
			check(L, checkNode(L, 1).Remove())
			return 0
		},
		"set_attr": func(L *lua.LState) int {
			n, name := checkNode(L, 1), L.CheckString(2)
			if v := L.Get(3); v == lua.LNil {
				check(L, n.RemoveAttribute(name))
			} else {
				check(L, n.SetAttribute(name, L.CheckString(3)))
			}
			return 0
		},
		"attr": func(L *lua.LState) int {
			v, ok := checkNode(L, 1).Attribute(L.CheckString(2))
			if !ok {
				L.Push(lua.LNil)
				return 1
			}
			L.Push(lua.LString(v))
			return 1
		},
		"parent": func(L *lua.LState) int {
			pushNode(L, checkNode(L, 1).Parent())
			return 1
		},
		"children": func(L *lua.LState) int {
			tbl := L.NewTable()
			for _, child := range checkNode(L, 1).Children() {
				tbl.Append(nodeValue(L, child))
			}
			L.Push(tbl)
			return 1
		},
	}
}

func pushNode(L *lua.LState, n *surface.Node) {
	L.Push(nodeValue(L, n))
}

func nodeValue(L *lua.LState, n *surface.Node) lua.LValue {
	if n == nil {
		return lua.LNil
	}
	ud := L.NewUserData()
	ud.Value = n
	L.SetMetatable(ud, L.GetTypeMetatable(nodeTypeName))
	return ud
}

func checkNode(L *lua.LState, i int) *surface.Node {
	ud := L.CheckUserData(i)
	n, ok := ud.Value.(*surface.Node)
	if !ok {
		L.ArgError(i, "node expected")
	}
	return n
}

func nodeEqual(L *lua.LState) int {
	a, _ := L.CheckUserData(1).Value.(*surface.Node)
	b, _ := L.CheckUserData(2).Value.(*surface.Node)
	L.Push(lua.LBool(a == b))
	return 1
}

func nodeString(L *lua.LState) int {
	n := checkNode(L, 1)
	if n.IsText() {
		L.Push(lua.LString(fmt.Sprintf("#text(%q)", n.Data())))
	} else {
		L.Push(lua.LString("<" + n.Tag() + ">"))
	}
	return 1
}

// check raises err as a Lua error.
func check(L *lua.LState, err error) {
	if err != nil {
		L.RaiseError("%v", err)
	}
}

// guard turns a panic from a blot operation into a Lua error.
func guard(L *lua.LState, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			L.RaiseError("%v", r)
		}
	}()
	fn()
}

// toAny converts a scalar Lua argument to a Go value.
func toAny(v lua.LValue) any {
	switch v := v.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LString:
		return string(v)
	case lua.LNumber:
		return float64(v)
	default:
		return nil
	}
}

// toLua converts a gjson result to a Lua value.
func toLua(L *lua.LState, r gjson.Result) lua.LValue {
	switch r.Type {
	case gjson.False:
		return lua.LFalse
	case gjson.True:
		return lua.LTrue
	case gjson.Number:
		return lua.LNumber(r.Num)
	case gjson.String:
		return lua.LString(r.Str)
	case gjson.JSON:
		tbl := L.NewTable()
		if r.IsArray() {
			r.ForEach(func(_, v gjson.Result) bool {
				tbl.Append(toLua(L, v))
				return true
			})
		} else {
			r.ForEach(func(k, v gjson.Result) bool {
				tbl.RawSetString(k.String(), toLua(L, v))
				return true
			})
		}
		return tbl
	default:
		return lua.LNil
	}
}
