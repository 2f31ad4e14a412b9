package pdg

import "github.com/k-gruenberg/doublex-go/ast"

// MessageListener models a call to `chrome.runtime.onMessage.addListener` or
// `<port>.onMessage.addListener`, grounded on the original implementation's
// MessageListener.py: both callback shapes bind (message, sender,
// sendResponse) positionally, with message itself sometimes destructured as
// `{data, sender}` (observed in content-script ports).
type MessageListener struct {
	Call     *ast.Node // the addListener CallExpression
	Callback *ast.Node // the Function passed as the listener argument
}

// FindMessageListeners scans root for every addListener call whose receiver
// chain ends in `.onMessage` — covering both chrome.runtime.onMessage and
// arbitrary port.onMessage values.
func FindMessageListeners(root *ast.Node) []*MessageListener {
	var out []*MessageListener
	root.PreOrder(func(n *ast.Node) {
		if n.Kind != ast.KindCallExpression {
			return
		}
		callee := n.GetOne("callee")
		if callee == nil || callee.Kind != ast.KindMemberExpression {
			return
		}
		prop := callee.GetOne("property")
		if prop == nil || prop.Name() != "addListener" {
			return
		}
		recv := callee.GetOne("object")
		if recv == nil || recv.Kind != ast.KindMemberExpression {
			return
		}
		recvProp := recv.GetOne("property")
		if recvProp == nil || recvProp.Name() != "onMessage" {
			return
		}
		args := n.Get("arguments")
		if len(args) == 0 {
			return
		}
		cb := args[0]
		if !cb.Kind.IsFunction() {
			if fn := ResolveFunc(cb); fn != nil {
				cb = fn.Node
			} else {
				return
			}
		}
		out = append(out, &MessageListener{Call: n, Callback: cb})
	})
	return out
}

func (ml *MessageListener) params() []*ast.Node {
	if !ml.Callback.Kind.IsFunction() {
		return nil
	}
	return ml.Callback.Get("params")
}

// MessageParam returns the listener's first (message/data) parameter.
func (ml *MessageListener) MessageParam() *ast.Node {
	p := ml.params()
	if len(p) < 1 {
		return nil
	}
	return p[0]
}

// SenderParam returns the listener's second (sender) parameter.
func (ml *MessageListener) SenderParam() *ast.Node {
	p := ml.params()
	if len(p) < 2 {
		return nil
	}
	return p[1]
}

// SendResponseParam returns the listener's third (sendResponse) parameter.
func (ml *MessageListener) SendResponseParam() *ast.Node {
	p := ml.params()
	if len(p) < 3 {
		return nil
	}
	return p[2]
}

// DestructuredField returns the bound Identifier for fieldName when the
// message parameter is an object pattern like `{data, sender}`, or nil when
// the message parameter isn't destructured or has no such field.
func (ml *MessageListener) DestructuredField(fieldName string) *ast.Node {
	pattern := ml.MessageParam()
	if pattern == nil || pattern.Kind != ast.KindObjectPattern {
		return nil
	}
	for _, prop := range pattern.Get("properties") {
		key := prop.GetOne("key")
		if key != nil && key.Name() == fieldName {
			return prop.GetOne("value")
		}
	}
	return nil
}
