package digest_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Hex(t *testing.T) {
	type table struct {
		name  string
		alg   digest.Algorithm
		parts []string
		exp   string
	}

	tt := []table{
		{
			name:  "sha256",
			alg:   digest.SHA256,
			parts: []string{"abc"},
			exp:   "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:  "sha256-split",
			alg:   digest.SHA256,
			parts: []string{"a", "b", "c"},
			exp:   "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		},
		{
			name:  "keccak256-empty",
			alg:   digest.Keccak256,
			parts: nil,
			exp:   "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		},
	}

	t.Log("Given the need to hash content into a hex digest.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				got := tst.alg.Hex(tst.parts...)
				if got != tst.exp {
					t.Logf("\t%s\tTest %d:\tgot: %s", failed, testID, got)
					t.Logf("\t%s\tTest %d:\texp: %s", failed, testID, tst.exp)
					t.Fatalf("\t%s\tTest %d:\tShould get back the expected digest.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould get back the expected digest.", success, testID)

				if len(got) != tst.alg.Length() {
					t.Fatalf("\t%s\tTest %d:\tShould get back %d hex characters, got %d.", failed, testID, tst.alg.Length(), len(got))
				}
				t.Logf("\t%s\tTest %d:\tShould get back %d hex characters.", success, testID, tst.alg.Length())

				if again := tst.alg.Hex(tst.parts...); again != got {
					t.Fatalf("\t%s\tTest %d:\tShould be deterministic.", failed, testID)
				}
				t.Logf("\t%s\tTest %d:\tShould be deterministic.", success, testID)
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_Parse(t *testing.T) {
	type table struct {
		name string
		in   string
		exp  digest.Algorithm
		err  bool
	}

	tt := []table{
		{name: "sha256", in: "sha256", exp: digest.SHA256},
		{name: "upper", in: "KECCAK256", exp: digest.Keccak256},
		{name: "unknown", in: "md5", err: true},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			alg, err := digest.Parse(tst.in)
			if tst.err {
				if err == nil {
					t.Fatalf("Test %s:\tShould fail to parse %q.", tst.name, tst.in)
				}
				return
			}

			if err != nil {
				t.Fatalf("Test %s:\tShould be able to parse %q: %v", tst.name, tst.in, err)
			}

			if alg != tst.exp {
				t.Logf("Test %s:\tgot: %s", tst.name, alg)
				t.Logf("Test %s:\texp: %s", tst.name, tst.exp)
				t.Fatalf("Test %s:\tShould get back the right algorithm.", tst.name)
			}
		}

		t.Run(tst.name, f)
	}
}
