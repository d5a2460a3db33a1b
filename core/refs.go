package core

import (
	"sync"

	"github.com/ravenmq/raven/buffer"
	"github.com/ravenmq/raven/state"
)

// Link is an outbound delivery channel to a directly attached endpoint.
// The connection layer owns the link; the core only references it from
// address target lists. Deliver is the callback the forwarder invokes on
// the core goroutine when a message is routed to this link.
type Link struct {
	Name    string
	Deliver func(msg *buffer.Field)

	// ref points back at this link's wrapper while it is a member of a
	// reference list. Non-nil iff exactly one wrapper in exactly one list
	// references this link, which caps a link to one list at a time.
	ref *LinkRef
}

// Node is a peer router in the router network.
type Node struct {
	Id state.RouterId

	ref *NodeRef
}

// LinkRef unites an intrusive list node with an address's link target.
type LinkRef struct {
	next, prev *LinkRef
	owner      *LinkRefList
	link       *Link
}

func (r *LinkRef) Link() *Link    { return r.link }
func (r *LinkRef) Next() *LinkRef { return r.next }

// LinkRefList is a per-address, insertion-ordered list of forwarding
// targets. Insertion order is significant: it controls fan-out and
// round-robin iteration order.
type LinkRefList struct {
	head, tail *LinkRef
	size       int
}

var linkRefPool = sync.Pool{New: func() any { return new(LinkRef) }}

func (l *LinkRefList) Len() int        { return l.size }
func (l *LinkRefList) First() *LinkRef { return l.head }

// Add appends a wrapper for link at the tail and wires the link's
// back-pointer to it.
func (l *LinkRefList) Add(link *Link) {
	ref := linkRefPool.Get().(*LinkRef)
	ref.next = nil
	ref.prev = l.tail
	ref.owner = l
	ref.link = link
	link.ref = ref
	if l.tail != nil {
		l.tail.next = ref
	} else {
		l.head = ref
	}
	l.tail = ref
	l.size++
}

// Remove locates the wrapper through the link's back-pointer, unlinks it
// and recycles it. Removing a link that is not a member of this list is a
// safe no-op: producers may race a detach against an in-flight forwarding
// decision, and a link held by some other list must stay untouched.
func (l *LinkRefList) Remove(link *Link) bool {
	ref := link.ref
	if ref == nil || ref.owner != l {
		return false
	}
	l.unlink(ref)
	link.ref = nil
	ref.owner = nil
	ref.link = nil
	ref.next = nil
	ref.prev = nil
	linkRefPool.Put(ref)
	l.size--
	return true
}

func (l *LinkRefList) unlink(ref *LinkRef) {
	if ref.prev != nil {
		ref.prev.next = ref.next
	} else {
		l.head = ref.next
	}
	if ref.next != nil {
		ref.next.prev = ref.prev
	} else {
		l.tail = ref.prev
	}
}

// NodeRef and NodeRefList mirror the link reference scheme for peer-router
// interest sets.
type NodeRef struct {
	next, prev *NodeRef
	owner      *NodeRefList
	node       *Node
}

func (r *NodeRef) Node() *Node    { return r.node }
func (r *NodeRef) Next() *NodeRef { return r.next }

type NodeRefList struct {
	head, tail *NodeRef
	size       int
}

var nodeRefPool = sync.Pool{New: func() any { return new(NodeRef) }}

func (l *NodeRefList) Len() int        { return l.size }
func (l *NodeRefList) First() *NodeRef { return l.head }

func (l *NodeRefList) Add(node *Node) {
	ref := nodeRefPool.Get().(*NodeRef)
	ref.next = nil
	ref.prev = l.tail
	ref.owner = l
	ref.node = node
	node.ref = ref
	if l.tail != nil {
		l.tail.next = ref
	} else {
		l.head = ref
	}
	l.tail = ref
	l.size++
}

func (l *NodeRefList) Remove(node *Node) bool {
	ref := node.ref
	if ref == nil || ref.owner != l {
		return false
	}
	if ref.prev != nil {
		ref.prev.next = ref.next
	} else {
		l.head = ref.next
	}
	if ref.next != nil {
		ref.next.prev = ref.prev
	} else {
		l.tail = ref.prev
	}
	node.ref = nil
	ref.owner = nil
	ref.node = nil
	ref.next = nil
	ref.prev = nil
	nodeRefPool.Put(ref)
	l.size--
	return true
}
