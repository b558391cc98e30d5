package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/littleman/internal/core"
	"github.com/vovakirdan/littleman/internal/game"
	"github.com/vovakirdan/littleman/internal/level"
	"github.com/vovakirdan/littleman/internal/registry"
	"github.com/vovakirdan/littleman/internal/world"
)

var (
	flagPreviewW int
	flagPreviewH int
	flagForce    bool
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "Inspect and convert level files",
	Long: `Tools for level files. Maps are read from --maps (or paths.maps in the
config); without one the built-in maps are used.

Level files are named <id><ext>. Supported formats:
  text  .txt           - the classic whitespace separated format
  yaml  .yaml, .yml    - the same content with named fields`,
}

var mapsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available maps",
	Args:  cobra.NoArgs,
	Run:   runMapsList,
}

var mapsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every map and the links between them",
	Long: `Load every map, validate it and follow its edge and warp targets.
Exits with status 1 when any map has an error.`,
	Args: cobra.NoArgs,
	Run:  runMapsCheck,
}

var mapsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Describe one map and print a preview",
	Args:  cobra.ExactArgs(1),
	Run:   runMapsShow,
}

var mapsConvertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a level file to another format",
	Long: `Read a level file and write it in the format chosen by the output
extension. The map id is taken from the file names.

Examples:
  littleman maps convert levels/4.txt levels/4.yaml
  littleman maps convert 4.yaml 4.txt --force`,
	Args: cobra.ExactArgs(2),
	Run:  runMapsConvert,
}

func init() {
	mapsShowCmd.Flags().IntVar(&flagPreviewW, "width", 80, "Preview width in cells")
	mapsShowCmd.Flags().IntVar(&flagPreviewH, "height", 24, "Preview height in cells")
	mapsConvertCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite the output file")

	mapsCmd.AddCommand(mapsListCmd)
	mapsCmd.AddCommand(mapsCheckCmd)
	mapsCmd.AddCommand(mapsShowCmd)
	mapsCmd.AddCommand(mapsConvertCmd)
}

func runMapsList(_ *cobra.Command, _ []string) {
	a, err := newApp(false)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	maps := a.maps()
	ids, err := maps.ListIDs()
	if err != nil {
		fail("cannot list maps: %v", err)
	}
	if len(ids) == 0 {
		fmt.Println("No maps found.")
		return
	}

	source := "built-in maps"
	if dir := a.mapsDir(); dir != "" {
		source = dir
	}
	fmt.Printf("Maps in %s:\n\n", source)

	fmt.Printf("  %-4s  %-9s  %-6s  %-5s  %s\n", "ID", "Size", "Shapes", "Warps", "Edges (L R U D)")
	fmt.Printf("  %-4s  %-9s  %-6s  %-5s  %s\n", "--", "----", "------", "-----", "---------------")
	for _, id := range ids {
		m, err := maps.Load(id)
		if err != nil {
			fmt.Printf("  %-4d  broken: %v\n", id, err)
			continue
		}
		fmt.Printf("  %-4d  %-9s  %-6d  %-5d  %s\n",
			id,
			fmt.Sprintf("%dx%d", m.Width, m.Height),
			m.ShapeCount(),
			m.WarpCount(),
			edgeList(m.Edges),
		)
	}

	fmt.Println()
	fmt.Println("Run 'littleman play --map <id>' to start on a map.")
}

func edgeList(e world.EdgeWarps) string {
	parts := make([]string, 0, 4)
	for _, id := range []int{e.Left, e.Right, e.Up, e.Down} {
		if id == world.NoEdge {
			parts = append(parts, "n")
		} else {
			parts = append(parts, strconv.Itoa(id))
		}
	}
	return strings.Join(parts, " ")
}

func runMapsCheck(_ *cobra.Command, _ []string) {
	a, err := newApp(false)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	issues, err := a.maps().Check()
	if err != nil {
		fail("cannot check maps: %v", err)
	}

	errs := 0
	for _, is := range issues {
		fmt.Println(is.String())
		if is.Severity == level.SeverityError {
			errs++
		}
	}
	if len(issues) == 0 {
		fmt.Println("All maps are valid.")
		return
	}
	fmt.Printf("\n%d errors, %d warnings\n", errs, len(issues)-errs)
	if errs > 0 {
		os.Exit(1)
	}
}

func runMapsShow(_ *cobra.Command, args []string) {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fail("map id must be a number, got %q", args[0])
	}

	a, err := newApp(false)
	if err != nil {
		fail("%v", err)
	}
	defer a.close()

	maps := a.maps()
	m, err := maps.Load(id)
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Map %d\n\n", m.ID)
	fmt.Printf("  Size   %dx%d\n", m.Width, m.Height)
	fmt.Printf("  Spawn  (%d,%d)\n", m.SpawnX, m.SpawnY)
	fmt.Printf("  Edges  %s\n", edgeList(m.Edges))

	counts := make(map[world.CollisionKind]int)
	for _, s := range m.Shapes() {
		counts[s.Collision]++
	}
	fmt.Printf("  Shapes %d\n", m.ShapeCount())
	for k := world.CollisionKind(0); k.Valid(); k++ {
		if counts[k] > 0 {
			fmt.Printf("    %-12s %d\n", k, counts[k])
		}
	}
	fmt.Printf("  Warps  %d\n", m.WarpCount())
	for i, w := range m.Warps() {
		fmt.Printf("    #%d -> map %d at (%d,%d)\n", i, w.Map, w.X, w.Y)
	}
	fmt.Println()

	// Preview through the game renderer, character on the spawn point.
	g, err := game.New(maps, game.Options{StartMap: id, Tuning: a.cfg.Physics}, a.log.WithPrefix("game"))
	if err != nil {
		fail("%v", err)
	}
	runtime := a.runtime()
	runtime.HUD = false
	g.Reset(runtime)

	screen := core.NewScreen(flagPreviewW, flagPreviewH)
	g.Render(screen)
	fmt.Println(screen.String())
}

func runMapsConvert(_ *cobra.Command, args []string) {
	in, out := args[0], args[1]

	from, ok := registry.ForExtension(filepath.Ext(in))
	if !ok {
		fail("no level format for %q (known: %s)", in, strings.Join(registry.Extensions(), ", "))
	}
	to, ok := registry.ForExtension(filepath.Ext(out))
	if !ok {
		fail("no level format for %q (known: %s)", out, strings.Join(registry.Extensions(), ", "))
	}

	id, ok := level.IDFromName(in)
	if !ok {
		if id, ok = level.IDFromName(out); !ok {
			fail("cannot tell the map id: name one of the files <id>%s", filepath.Ext(out))
		}
	}

	if !flagForce {
		if _, err := os.Stat(out); err == nil {
			fail("%s exists; use --force to overwrite", out)
		}
	}

	data, err := os.ReadFile(in)
	if err != nil {
		fail("%v", err)
	}
	m, err := from.Decode(id, data)
	if err != nil {
		fail("cannot read %s: %v", in, err)
	}
	for _, is := range level.Validate(m) {
		fmt.Fprintln(os.Stderr, is.String())
	}

	encoded, err := to.Encode(m)
	if err != nil {
		fail("cannot encode %s: %v", to.Name(), err)
	}
	if err := os.WriteFile(out, encoded, 0o644); err != nil {
		fail("%v", err)
	}
	fmt.Printf("Converted map %d: %s (%s) -> %s (%s)\n", id, in, from.Name(), out, to.Name())
}
