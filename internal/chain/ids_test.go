package chain

import "testing"

func TestContractIDDeterministic(t *testing.T) {
	const id = "5f0c9a9a-2b64-4f8f-9a3e-6a4f0d9b2c11"

	first := ContractID(id)
	second := ContractID(id)
	if first != second {
		t.Fatalf("derivation must be deterministic: %d != %d", first, second)
	}
	if first == 0 {
		t.Fatalf("derived id should not be zero")
	}

	other := ContractID("aa0c9a9a-2b64-4f8f-9a3e-6a4f0d9b2c11")
	if other == first {
		t.Fatalf("distinct uuids should derive distinct ids")
	}
}
