package document

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

const containerPath = "META-INF/container.xml"

type epubContainer struct {
	XMLName   xml.Name       `xml:"container"`
	RootFiles []epubRootFile `xml:"rootfiles>rootfile"`
}

type epubRootFile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

type epubPackage struct {
	XMLName  xml.Name `xml:"package"`
	Metadata struct {
		Titles   []string `xml:"title"`
		Creators []string `xml:"creator"`
	} `xml:"metadata"`
	Manifest struct {
		Items []epubItem `xml:"item"`
	} `xml:"manifest"`
	Spine struct {
		ItemRefs []struct {
			IDRef string `xml:"idref,attr"`
		} `xml:"itemref"`
	} `xml:"spine"`
}

type epubItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

// epubReader walks the OPF spine and renders each XHTML document as markdown,
// so chapter headings survive as "# ..." lines.
type epubReader struct {
	policy *bluemonday.Policy
	md     *converter.Converter
}

func newEPUBReader() *epubReader {
	return &epubReader{
		policy: bluemonday.UGCPolicy(),
		md: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

func (r *epubReader) read(filePath string) (*RawDocument, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer zr.Close()

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	var container epubContainer
	if err := decodeXML(files, containerPath, &container); err != nil {
		return nil, err
	}
	if len(container.RootFiles) == 0 {
		return nil, errors.New("no rootfile found in container.xml")
	}

	opfPath := container.RootFiles[0].FullPath
	var pkg epubPackage
	if err := decodeXML(files, opfPath, &pkg); err != nil {
		return nil, err
	}

	manifest := make(map[string]epubItem, len(pkg.Manifest.Items))
	for _, item := range pkg.Manifest.Items {
		manifest[item.ID] = item
	}

	opfDir := path.Dir(opfPath)
	var sections []string
	for _, ref := range pkg.Spine.ItemRefs {
		item, ok := manifest[ref.IDRef]
		if !ok || (item.MediaType != "application/xhtml+xml" && item.MediaType != "text/html") {
			continue
		}
		href, err := url.PathUnescape(item.Href)
		if err != nil {
			href = item.Href
		}
		raw, err := readZipFile(files, path.Join(opfDir, href))
		if err != nil {
			return nil, err
		}
		text, err := r.md.ConvertString(r.policy.Sanitize(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("failed to convert %s to markdown: %w", item.Href, err)
		}
		if text = strings.TrimSpace(text); text != "" {
			sections = append(sections, text)
		}
	}

	doc := &RawDocument{Text: strings.Join(sections, "\n\n")}
	if len(pkg.Metadata.Titles) > 0 {
		doc.Metadata.Title = strings.TrimSpace(pkg.Metadata.Titles[0])
	}
	if len(pkg.Metadata.Creators) > 0 {
		doc.Metadata.Author = strings.TrimSpace(pkg.Metadata.Creators[0])
	}
	return doc, nil
}

func readZipFile(files map[string]*zip.File, name string) ([]byte, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("%s not found in epub", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func decodeXML(files map[string]*zip.File, name string, v any) error {
	data, err := readZipFile(files, name)
	if err != nil {
		return err
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}
