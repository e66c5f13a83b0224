package ir

// ArgumentPurpose distinguishes a normal function parameter from one that
// plays a reserved role, such as carrying the VM context pointer.
type ArgumentPurpose uint8

const (
	PurposeNormal ArgumentPurpose = iota
	PurposeVMContext
	PurposeStructReturn
)

func (p ArgumentPurpose) String() string {
	switch p {
	case PurposeVMContext:
		return "vmctx"
	case PurposeStructReturn:
		return "sret"
	default:
		return "normal"
	}
}

// ArgumentExtension says how a sub-word argument should be extended to
// fill a register.
type ArgumentExtension uint8

const (
	ExtensionNone ArgumentExtension = iota
	ExtensionUext
	ExtensionSext
)

// AbiParam describes one parameter or return value of a Signature.
type AbiParam struct {
	Type      Type
	Purpose   ArgumentPurpose
	Extension ArgumentExtension
}

// Signature is a function's calling-convention contract: the types of its
// parameters and of its return values.
type Signature struct {
	Params      []AbiParam
	ReturnTypes []AbiParam
}

// ExtFuncData is an external function reference: a link-time name plus
// the signature it must be called with.
type ExtFuncData struct {
	Name      string
	Signature SigRef
}
