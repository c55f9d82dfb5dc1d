package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func mkdir(t *testing.T, root, rel string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, rel), 0o755))
}

func TestDetect_React(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"dependencies": {"react": "^18.0.0", "react-dom": "^18.0.0"}}`)

	info := Detect(root, false)

	require.Equal(t, []string{TypeReact}, info.Types)
	require.Equal(t, TypeReact, info.MainFramework)
	require.False(t, info.IsMultiProject)
}

func TestDetect_ReactNativeExcludesReact(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"dependencies": {"react": "18.2.0", "react-native": "0.74.0"}}`)

	info := Detect(root, false)

	require.Equal(t, []string{TypeReactNative}, info.Types)
	require.Equal(t, TypeReactNative, info.MainFramework)
}

func TestDetect_NextJSVariants(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"dependencies": {"next": "14.0.0", "react": "18.2.0"}}`)
	mkdir(t, root, "app")

	info := Detect(root, false)

	// next implies react too; both tags coexist, priority picks nextjs.
	require.Contains(t, info.Types, TypeNextJS)
	require.Contains(t, info.Types, TypeReact)
	require.Equal(t, TypeNextJS, info.MainFramework)
	require.Equal(t, VariantAppRouter, info.Variant(TypeNextJS))
	require.True(t, info.IsMultiProject)

	pagesRoot := t.TempDir()
	write(t, pagesRoot, "package.json", `{"dependencies": {"next": "13.0.0", "react": "18.2.0"}}`)
	mkdir(t, pagesRoot, "pages")

	pagesInfo := Detect(pagesRoot, false)
	require.Equal(t, VariantPagesRouter, pagesInfo.Variant(TypeNextJS))
}

func TestDetect_ReactToolchainVariant(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{
		"dependencies": {"react": "18.2.0"},
		"scripts": {"start": "react-scripts start", "build": "react-scripts build"}
	}`)

	info := Detect(root, false)
	require.Equal(t, VariantCRA, info.Variant(TypeReact))

	viteRoot := t.TempDir()
	write(t, viteRoot, "package.json", `{
		"dependencies": {"react": "18.2.0"},
		"devDependencies": {"vite": "5.0.0"},
		"scripts": {"dev": "vite"}
	}`)

	viteInfo := Detect(viteRoot, false)
	require.Equal(t, VariantVite, viteInfo.Variant(TypeReact))
}

func TestDetect_AngularByConfigFile(t *testing.T) {
	root := t.TempDir()
	write(t, root, "angular.json", `{"projects": {}}`)

	info := Detect(root, false)
	require.Equal(t, []string{TypeAngular}, info.Types)
}

func TestDetect_SignalsAreIndependent(t *testing.T) {
	// A react app deployed on firebase carries both tags; no signal
	// short-circuits another.
	root := t.TempDir()
	write(t, root, "package.json", `{"dependencies": {"react": "18.2.0"}}`)
	write(t, root, "firebase.json", `{"hosting": {}}`)

	info := Detect(root, false)

	require.Equal(t, []string{TypeReact, TypeFirebase}, info.Types)
	require.Equal(t, TypeReact, info.MainFramework)
	require.True(t, info.IsMultiProject)
}

func TestDetect_FirebaseFunctionsViaSubdirManifest(t *testing.T) {
	root := t.TempDir()
	write(t, root, "firebase.json", `{"functions": {}}`)
	write(t, root, "functions/package.json", `{"dependencies": {"firebase-functions": "4.0.0"}}`)

	info := Detect(root, false)

	require.Contains(t, info.Types, TypeFirebase)
	require.Contains(t, info.Types, TypeFirebaseFunctions)
}

func TestDetect_SpringBootAndDotnetAndFlutter(t *testing.T) {
	spring := t.TempDir()
	write(t, spring, "pom.xml", `<project><parent><artifactId>spring-boot-starter-parent</artifactId></parent></project>`)
	require.Equal(t, []string{TypeSpringBoot}, Detect(spring, false).Types)

	dotnet := t.TempDir()
	write(t, dotnet, "Api.csproj", `<Project Sdk="Microsoft.NET.Sdk.Web"/>`)
	require.Equal(t, []string{TypeDotnet}, Detect(dotnet, false).Types)

	flutter := t.TempDir()
	write(t, flutter, "pubspec.yaml", "name: app\ndependencies:\n  flutter:\n    sdk: flutter\n")
	require.Equal(t, []string{TypeFlutter}, Detect(flutter, false).Types)
}

func TestDetect_MalformedManifestIsSignalAbsent(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"dependencies": {`)

	info := Detect(root, false)
	require.Empty(t, info.Types)
	require.Equal(t, "", info.MainFramework)
}

func TestDetect_EmptyTree(t *testing.T) {
	info := Detect(t.TempDir(), true)
	require.Empty(t, info.Types)
	require.Empty(t, info.SubProjects)
	require.False(t, info.IsMultiProject)
}

func TestDetect_DeepSubProjects(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"name": "workspace"}`)
	write(t, root, "client/package.json", `{"dependencies": {"react": "18.2.0"}}`)
	write(t, root, "server/package.json", `{"dependencies": {"express": "4.18.0", "pg": "8.0.0"}}`)
	write(t, root, "packages/shared/package.json", `{"name": "shared", "dependencies": {"zod": "3.0.0"}}`)

	info := Detect(root, true)

	require.True(t, info.IsMultiProject)
	require.Len(t, info.SubProjects, 3)

	byPath := make(map[string]SubProject)
	for _, sp := range info.SubProjects {
		byPath[sp.RelativePath] = sp
	}

	require.Equal(t, TypeReact, byPath["client"].Type)
	require.Equal(t, TypeNode, byPath["server"].Type)
	require.Equal(t, []string{"express", "pg"}, byPath["server"].Dependencies)
	// No framework signal: a bare manifest resolves as a generic node package.
	require.Equal(t, TypeNode, byPath["packages/shared"].Type)
}

func TestDetect_DeepSkipsEmptyConventionalDirs(t *testing.T) {
	root := t.TempDir()
	write(t, root, "package.json", `{"dependencies": {"react": "18.2.0"}}`)
	mkdir(t, root, "client") // no manifest inside

	info := Detect(root, true)
	require.Empty(t, info.SubProjects)
}

func TestDetect_ShallowSkipsSubProjects(t *testing.T) {
	root := t.TempDir()
	write(t, root, "client/package.json", `{"dependencies": {"react": "18.2.0"}}`)

	info := Detect(root, false)
	require.Empty(t, info.SubProjects)
	require.False(t, info.IsMultiProject)
}

func TestMainFramework_PriorityOrder(t *testing.T) {
	require.Equal(t, TypeNextJS, mainFramework([]string{TypeReact, TypeFirebase, TypeNextJS}))
	require.Equal(t, TypeFlutter, mainFramework([]string{TypeFirebase, TypeFlutter}))
	require.Equal(t, "custom-tag", mainFramework([]string{"custom-tag"}))
	require.Equal(t, "", mainFramework(nil))
}
