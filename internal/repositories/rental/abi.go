package rental

import "github.com/ethereum/go-ethereum/crypto"

// ABI definitions of the three contract interfaces the backend talks to.
// Kept inline instead of generated bindings: the suite is three small
// interfaces and the backend only ever calls a handful of methods.

const cptTokenABI = `[
	{"type":"function","name":"balanceOf","stateMutability":"view",
		"inputs":[{"name":"account","type":"address"}],
		"outputs":[{"name":"","type":"uint256"}]}
]`

const agreementFactoryABI = `[
	{"type":"function","name":"createAgreement","stateMutability":"nonpayable",
		"inputs":[
			{"name":"user","type":"address"},
			{"name":"token","type":"address"},
			{"name":"vehicleId","type":"string"},
			{"name":"rentAmount","type":"uint256"},
			{"name":"depositAmount","type":"uint256"}],
		"outputs":[{"name":"agreement","type":"address"}]},
	{"type":"function","name":"getAgreements","stateMutability":"view",
		"inputs":[],
		"outputs":[{"name":"","type":"address[]"}]},
	{"type":"event","name":"AgreementCreated","anonymous":false,
		"inputs":[
			{"name":"agreement","type":"address","indexed":true},
			{"name":"owner","type":"address","indexed":true},
			{"name":"user","type":"address","indexed":true},
			{"name":"vehicleId","type":"string","indexed":false}]}
]`

const rentalAgreementABI = `[
	{"type":"function","name":"getAgreementDetails","stateMutability":"view",
		"inputs":[],
		"outputs":[
			{"name":"owner","type":"address"},
			{"name":"user","type":"address"},
			{"name":"vehicleId","type":"string"},
			{"name":"rentAmount","type":"uint256"},
			{"name":"depositAmount","type":"uint256"},
			{"name":"startDate","type":"uint256"},
			{"name":"endDate","type":"uint256"},
			{"name":"status","type":"uint8"},
			{"name":"ownerSigned","type":"bool"},
			{"name":"userSigned","type":"bool"}]},
	{"type":"function","name":"signAgreement","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"makePayment","stateMutability":"nonpayable",
		"inputs":[{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"completeAgreement","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"function","name":"cancelAgreement","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"event","name":"PaymentMade","anonymous":false,
		"inputs":[
			{"name":"payer","type":"address","indexed":true},
			{"name":"amount","type":"uint256","indexed":false},
			{"name":"timestamp","type":"uint256","indexed":false}]}
]`

const (
	agreementCreatedSig = "AgreementCreated(address,address,address,string)"
	paymentMadeSig      = "PaymentMade(address,uint256,uint256)"
)

var (
	AgreementCreatedHash = crypto.Keccak256Hash([]byte(agreementCreatedSig))
	PaymentMadeHash      = crypto.Keccak256Hash([]byte(paymentMadeSig))
)
