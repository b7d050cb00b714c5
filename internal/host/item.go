package host

// ItemKind enumerates the item kinds of the host.
type ItemKind uint8

const (
	ItemExternCrate ItemKind = iota + 1
	ItemUse
	ItemStatic
	ItemConst
	ItemFn
	ItemMacro
	ItemMod
	ItemForeignMod
	ItemGlobalAsm
	ItemTyAlias
	ItemOpaqueTy
	ItemEnum
	ItemStruct
	ItemUnion
	ItemTrait
	ItemTraitAlias
	ItemImpl
)

func (k ItemKind) String() string {
	switch k {
	case ItemExternCrate:
		return "extern crate"
	case ItemUse:
		return "use"
	case ItemStatic:
		return "static"
	case ItemConst:
		return "const"
	case ItemFn:
		return "fn"
	case ItemMacro:
		return "macro"
	case ItemMod:
		return "mod"
	case ItemForeignMod:
		return "foreign mod"
	case ItemGlobalAsm:
		return "global asm"
	case ItemTyAlias:
		return "type alias"
	case ItemOpaqueTy:
		return "opaque type"
	case ItemEnum:
		return "enum"
	case ItemStruct:
		return "struct"
	case ItemUnion:
		return "union"
	case ItemTrait:
		return "trait"
	case ItemTraitAlias:
		return "trait alias"
	case ItemImpl:
		return "impl"
	}
	return "unknown"
}

// Item is one top-level or nested item. Exactly the payload matching Kind is
// set; kinds the host has but the driver never reads carry no payload.
type Item struct {
	DefId DefId
	Ident Ident
	Span  Span
	Kind  ItemKind

	ExternCrate *ExternCrate
	Use         *Use
	Static      *Static
	Const       *Const
	Fn          *Fn
	Mod         *Mod
	TyAlias     *TyAlias
	Impl        *Impl
}

type ExternCrate struct {
	// Original is set for `extern crate original as ident;`.
	Original    Symbol
	HasOriginal bool
}

type UseKind uint8

const (
	UseSingle UseKind = iota + 1
	UseGlob
	// UseListStem is the synthetic item the host keeps for the `a::b` in
	// `use a::b::{c, d};`. Every leaf is lowered into its own item.
	UseListStem
)

type Use struct {
	Path *Path
	Kind UseKind
}

type Static struct {
	Ty      *Ty
	Mutable bool
	Body    BodyId
}

// Const is used for both free and associated constants.
type Const struct {
	Ty      *Ty
	Body    BodyId
	HasBody bool
}

// Fn is used for both free and associated functions.
type Fn struct {
	Sig      FnSig
	Generics *Generics
	Body     BodyId
	HasBody  bool
}

type Mod struct {
	Items []DefId
	Span  Span
}

type TyAlias struct {
	Ty       *Ty
	Generics *Generics
}

type Impl struct {
	Unsafe   bool
	Negative bool
	Generics *Generics
	OfTrait  *TraitRef
	SelfTy   *Ty
	Items    []ImplItemRef
}

// ImplItemRef is the reference an impl keeps to each associated item.
type ImplItemRef struct {
	Id    DefId
	Ident Ident
	Span  Span
}

type ImplItemKind uint8

const (
	ImplItemConst ImplItemKind = iota + 1
	ImplItemFn
	ImplItemType
)

// ImplItem is an associated item of an impl block.
type ImplItem struct {
	DefId    DefId
	Ident    Ident
	Span     Span
	Kind     ImplItemKind
	Generics *Generics

	Const   *Const
	Fn      *Fn
	TyAlias *TyAlias
}

// Abi is the calling convention as spelled by the host.
type Abi uint8

const (
	AbiRust Abi = iota
	AbiC
	AbiCUnwind
	AbiSystem
	AbiRustIntrinsic
	AbiRustCall
)

// FnHeader carries the qualifiers of a function signature.
type FnHeader struct {
	Const  bool
	Async  bool
	Unsafe bool
	Abi    Abi
}

// FnDecl lists input types in declaration order. Output is nil for the
// default return type.
type FnDecl struct {
	Inputs       []*Ty
	Output       *Ty
	ImplicitSelf bool
}

type FnSig struct {
	Header FnHeader
	Decl   FnDecl
	Span   Span
}
