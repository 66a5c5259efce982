package container_test

import (
	"testing"

	"github.com/km-arc/crucible/container"
)

func TestExtensionRegistry_RegisterAndLookup(t *testing.T) {
	registry := container.NewExtensionRegistry()

	if err := registry.Register("greeting", func() container.Extension {
		return &greetingExtension{}
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	construct, ok := registry.Lookup("greeting")
	if !ok {
		t.Fatal("Lookup should find a registered name")
	}
	if _, isGreeting := construct().(*greetingExtension); !isGreeting {
		t.Error("constructor should build the registered extension type")
	}

	if _, ok := registry.Lookup("ghost"); ok {
		t.Error("Lookup should miss an unregistered name")
	}
}

func TestExtensionRegistry_DuplicateNameRejected(t *testing.T) {
	registry := container.NewExtensionRegistry()
	registry.MustRegister("ext", func() container.Extension { return &greetingExtension{} })

	err := registry.Register("ext", func() container.Extension { return &typedExtension{} })
	if !container.IsAlreadyRegistered(err) {
		t.Errorf("duplicate Register: got %v, want AlreadyRegistered", err)
	}
}

func TestExtensionRegistry_Names_Sorted(t *testing.T) {
	registry := container.NewExtensionRegistry()
	registry.MustRegister("b", func() container.Extension { return &greetingExtension{} })
	registry.MustRegister("a", func() container.Extension { return &greetingExtension{} })

	names := registry.Names()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("Names: got %v, want [a b]", names)
	}
}
